package clilayer

import (
	"context"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["layer-describe"] = layerDescribe
	lib.Args["layer-describe"] = layerDescribeArgs{}
}

type layerDescribeArgs struct {
	RuntimeVersion string `arg:"positional,required" help:"python runtime version, example: 3.13"`
	Architecture   string `arg:"positional,required" help:"arm64 or x86_64"`
	LayerVersion   int    `arg:"positional,required" help:"layer version number"`
	Region         string `arg:"-r,--region" help:"target region. default: current region"`
}

func (layerDescribeArgs) Description() string {
	return "\ndescribe one published layer version\n"
}

func layerDescribe() {
	var args layerDescribeArgs
	arg.MustParse(&args)
	ctx := context.Background()
	target := lib.RuntimeTarget{RuntimeVersion: args.RuntimeVersion, Architecture: args.Architecture}
	err := lib.ValidateTargets([]lib.RuntimeTarget{target})
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
	out, err := lib.LambdaGetLayerVersion(ctx, client, target, args.LayerVersion)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(
		*out.LayerVersionArn,
		fmt.Sprintf("version=%d", out.Version),
		fmt.Sprintf("created=%s", *out.CreatedDate),
	)
}
