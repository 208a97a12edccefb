package clilayer

import (
	"context"

	"github.com/alexflint/go-arg"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["ssm-put"] = ssmPut
	lib.Args["ssm-put"] = ssmPutArgs{}
}

type ssmPutArgs struct {
	Name   string `arg:"positional,required"`
	Value  string `arg:"positional,required"`
	Region string `arg:"-r,--region" help:"target region. default: current region"`
}

func (ssmPutArgs) Description() string {
	return "\nupsert a string parameter, overwriting any existing value\n"
}

func ssmPut() {
	var args ssmPutArgs
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
	err = lib.SsmPutParameter(ctx, client, args.Name, args.Value)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
}
