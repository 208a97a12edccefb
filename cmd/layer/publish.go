package clilayer

import (
	"context"

	"github.com/alexflint/go-arg"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["layer-publish"] = layerPublish
	lib.Args["layer-publish"] = layerPublishArgs{}
}

type layerPublishArgs struct {
	PackageVersion string `arg:"positional,required" help:"powertools package version, example: 3.1.0"`
	LayerVersion   int    `arg:"positional,required" help:"published layer version number"`
	Env            string `arg:"-e,--env" default:"prod" help:"beta or prod"`
	Region         string `arg:"-r,--region" help:"target region. default: current region"`
	Latest         bool   `arg:"-l,--latest" help:"also write the latest alias"`
	Conf           string `arg:"-c,--conf" help:"yaml file overriding the runtime matrix"`
}

func (layerPublishArgs) Description() string {
	return "\npublish ssm version pointers for a layer release in one region\n"
}

func layerPublish() {
	var args layerPublishArgs
	arg.MustParse(&args)
	ctx := context.Background()
	env, err := lib.ParseEnvironment(args.Env)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	conf, err := lib.LoadLayerConfig(args.Conf)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	region := args.Region
	if region == "" {
		region = lib.Region()
	}
	client, err := lib.SSMClientRegion(region)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	release := &lib.LayerRelease{
		Env:            env,
		PackageVersion: args.PackageVersion,
		LayerVersion:   args.LayerVersion,
		Region:         region,
		WriteLatest:    args.Latest,
	}
	err = lib.LayerPublish(ctx, client, release, conf.Targets)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}
