package lib

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

var lambdaClient *lambda.Client
var lambdaClientLock sync.Mutex

func LambdaClientExplicit(accessKeyID, accessKeySecret, region string) *lambda.Client {
	return lambda.NewFromConfig(*SessionExplicit(accessKeyID, accessKeySecret, region))
}

func LambdaClient() *lambda.Client {
	lambdaClientLock.Lock()
	defer lambdaClientLock.Unlock()
	if lambdaClient == nil {
		lambdaClient = lambda.NewFromConfig(*Session())
	}
	return lambdaClient
}

func LambdaClientRegion(region string) (*lambda.Client, error) {
	cfg, err := SessionRegion(region)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	return lambda.NewFromConfig(*cfg), nil
}

// LambdaLatestLayerVersion returns the newest published version of the layer
// for one runtime target. ListLayerVersions returns newest first.
func LambdaLatestLayerVersion(ctx context.Context, client *lambda.Client, target RuntimeTarget) (*lambdatypes.LayerVersionsListItem, error) {
	if doDebug {
		d := &Debug{start: time.Now(), name: "LambdaLatestLayerVersion"}
		defer d.Log()
	}
	out, err := client.ListLayerVersions(ctx, &lambda.ListLayerVersionsInput{
		LayerName: aws.String(LayerName(target)),
		MaxItems:  aws.Int32(1),
	})
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	if len(out.LayerVersions) == 0 {
		err := fmt.Errorf("no versions published for layer: %s", LayerName(target))
		Logger.Println("error:", err)
		return nil, err
	}
	return &out.LayerVersions[0], nil
}

func LambdaGetLayerVersion(ctx context.Context, client *lambda.Client, target RuntimeTarget, version int) (*lambda.GetLayerVersionOutput, error) {
	if doDebug {
		d := &Debug{start: time.Now(), name: "LambdaGetLayerVersion"}
		defer d.Log()
	}
	out, err := client.GetLayerVersion(ctx, &lambda.GetLayerVersionInput{
		LayerName:     aws.String(LayerName(target)),
		VersionNumber: aws.Int64(int64(version)),
	})
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	return out, nil
}
