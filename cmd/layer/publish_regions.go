package clilayer

import (
	"context"

	"github.com/alexflint/go-arg"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["layer-publish-regions"] = layerPublishRegions
	lib.Args["layer-publish-regions"] = layerPublishRegionsArgs{}
}

type layerPublishRegionsArgs struct {
	PackageVersion string `arg:"positional,required" help:"powertools package version, example: 3.1.0"`
	LayerVersion   int    `arg:"positional,required" help:"published layer version number"`
	Env            string `arg:"-e,--env" default:"prod" help:"beta or prod"`
	Latest         bool   `arg:"-l,--latest" help:"also write the latest alias"`
	Conf           string `arg:"-c,--conf" help:"yaml file overriding the runtime matrix and region list"`
	MaxConcurrency int    `arg:"-m,--max-concurrency" default:"8" help:"max regions published in parallel"`
}

func (layerPublishRegionsArgs) Description() string {
	return "\npublish ssm version pointers for a layer release in every region\n"
}

func layerPublishRegions() {
	var args layerPublishRegionsArgs
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
	release := &lib.LayerRelease{
		Env:            env,
		PackageVersion: args.PackageVersion,
		LayerVersion:   args.LayerVersion,
		WriteLatest:    args.Latest,
	}
	err = lib.LayerPublishRegions(ctx, release, conf.Regions, conf.Targets, args.MaxConcurrency)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}
