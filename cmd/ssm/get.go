package clilayer

import (
	"context"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["ssm-get"] = ssmGet
	lib.Args["ssm-get"] = ssmGetArgs{}
}

type ssmGetArgs struct {
	Name   string `arg:"positional,required"`
	Region string `arg:"-r,--region" help:"target region. default: current region"`
}

func (ssmGetArgs) Description() string {
	return "\nget a parameter value\n"
}

func ssmGet() {
	var args ssmGetArgs
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
	value, err := lib.SsmGetParameter(ctx, client, args.Name)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(value)
}
