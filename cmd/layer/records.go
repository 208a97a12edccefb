package clilayer

import (
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["layer-records"] = layerRecords
	lib.Args["layer-records"] = layerRecordsArgs{}
}

type layerRecordsArgs struct {
	PackageVersion string `arg:"positional,required" help:"powertools package version, example: 3.1.0"`
	LayerVersion   int    `arg:"positional,required" help:"published layer version number"`
	Region         string `arg:"positional,required" help:"target region"`
	Env            string `arg:"-e,--env" default:"prod" help:"beta or prod"`
	Latest         bool   `arg:"-l,--latest" help:"also derive the latest alias"`
	Conf           string `arg:"-c,--conf" help:"yaml file overriding the runtime matrix"`
}

func (layerRecordsArgs) Description() string {
	return "\nprint the derived ssm records for a layer release without writing\n"
}

func layerRecords() {
	var args layerRecordsArgs
	arg.MustParse(&args)
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
		Region:         args.Region,
		WriteLatest:    args.Latest,
	}
	err = release.Validate()
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	for _, record := range lib.LayerRecords(release, conf.Targets) {
		fmt.Println(record.Path, record.Value)
	}
}
