package clilayer

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexflint/go-arg"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["ssm-ls"] = ssmLs
	lib.Args["ssm-ls"] = ssmLsArgs{}
}

type ssmLsArgs struct {
	Prefix string `arg:"positional" default:"/aws/service/powertools" help:"path prefix to list under"`
	Region string `arg:"-r,--region" help:"target region. default: current region"`
}

func (ssmLsArgs) Description() string {
	return "\nlist parameters under a path prefix\n"
}

func ssmLs() {
	var args ssmLsArgs
	arg.MustParse(&args)
	ctx := context.Background()
	region := args.Region
	if region == "" {
		region = lib.Region()
	}
	client, err := lib.SSMClientRegion(region)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	params, err := lib.SsmListParameters(ctx, client, args.Prefix)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	sort.Slice(params, func(i, j int) bool { return *params[i].Name < *params[j].Name })
	for _, param := range params {
		fmt.Println(*param.Name, *param.Value)
	}
}
