package clilayer

import (
	"context"
	"fmt"

	"github.com/alexflint/go-arg"
	"github.com/nathants/liblayer/lib"
)

func init() {
	lib.Commands["iam-ensure-sar-publish-role"] = iamEnsureSarPublishRole
	lib.Args["iam-ensure-sar-publish-role"] = iamEnsureSarPublishRoleArgs{}
}

type iamEnsureSarPublishRoleArgs struct {
	Name      string `arg:"positional" default:"powertools-layer-sar-publish"`
	Principal string `arg:"--principal" default:"cloudformation" help:"service principal allowed to assume the role"`
	Preview   bool   `arg:"-p,--preview"`
}

func (iamEnsureSarPublishRoleArgs) Description() string {
	return "\nensure the iam role used to publish the layer via the serverless application repository\n"
}

func iamEnsureSarPublishRole() {
	var args iamEnsureSarPublishRoleArgs
	arg.MustParse(&args)
	ctx := context.Background()
	err := lib.IamEnsureSarPublishRole(ctx, args.Name, args.Principal, args.Preview)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	account, err := lib.StsAccount(ctx)
	if err != nil {
		lib.Logger.Fatal("error: ", err)
	}
	fmt.Println(fmt.Sprintf("arn:aws:iam::%s:role/%s", account, args.Name))
}
