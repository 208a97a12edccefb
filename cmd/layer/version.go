package clilayer

import (
	"context"
	"fmt"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["layer-version"] = layerVersion
	lib.Args["layer-version"] = layerVersionArgs{}
}

type layerVersionArgs struct {
	Region string `arg:"-r,--region" help:"target region. default: current region"`
	Conf   string `arg:"-c,--conf" help:"yaml file overriding the runtime matrix"`
}

func (layerVersionArgs) Description() string {
	return "\nshow the newest published layer version per runtime target\n"
}

func layerVersion() {
	var args layerVersionArgs
	arg.MustParse(&args)
	ctx := context.Background()
	conf, err := lib.LoadLayerConfig(args.Conf)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	region := args.Region
	if region == "" {
		region = lib.Region()
	}
	client, err := lib.LambdaClientRegion(region)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	for _, target := range conf.Targets {
		item, err := lib.LambdaLatestLayerVersion(ctx, client, target)
		if err != nil {
			lib.Logger.Fatal("error: ", err)
		}
		created := ""
		if item.CreatedDate != nil {
			created = *item.CreatedDate
			t, err := time.Parse("2006-01-02T15:04:05.000-0700", created)
			if err == nil {
				created = humanize.Time(t)
			}
		}
		fmt.Println(
			lib.LayerName(target),
			fmt.Sprintf("version=%d", item.Version),
			fmt.Sprintf("created=%s", created),
		)
	}
}
