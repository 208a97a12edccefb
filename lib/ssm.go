package lib

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
)

var ssmClient *ssm.Client
var ssmClientLock sync.Mutex

func SSMClientExplicit(accessKeyID, accessKeySecret, region string) *ssm.Client {
	return ssm.NewFromConfig(*SessionExplicit(accessKeyID, accessKeySecret, region))
}

func SSMClient() *ssm.Client {
	ssmClientLock.Lock()
	defer ssmClientLock.Unlock()
	if ssmClient == nil {
		ssmClient = ssm.NewFromConfig(*Session())
	}
	return ssmClient
}

func SSMClientRegion(region string) (*ssm.Client, error) {
	cfg, err := SessionRegion(region)
	if err != nil {
		Logger.Println("error:", err)
		return nil, err
	}
	return ssm.NewFromConfig(*cfg), nil
}

// SsmPutParameter is an overwrite-capable upsert. Writes are never retried
// here, a rejected write surfaces immediately and the caller decides whether
// to re-run the whole invocation.
func SsmPutParameter(ctx context.Context, client *ssm.Client, name, value string) error {
	if doDebug {
		d := &Debug{start: time.Now(), name: "SsmPutParameter"}
		defer d.Log()
	}
	_, err := client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      ssmtypes.ParameterTypeString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	return nil
}

func ssmIsThrottle(err error) bool {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return false
	}
	return Contains([]string{"ThrottlingException", "TooManyUpdates"}, ae.ErrorCode())
}

func SsmGetParameter(ctx context.Context, client *ssm.Client, name string) (string, error) {
	if doDebug {
		d := &Debug{start: time.Now(), name: "SsmGetParameter"}
		defer d.Log()
	}
	var value string
	err := retry.Do(func() error {
		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name: aws.String(name),
		})
		if err != nil {
			return err
		}
		value = *out.Parameter.Value
		return nil
	}, retry.Attempts(6), retry.Delay(1*time.Second), retry.LastErrorOnly(true), retry.RetryIf(ssmIsThrottle))
	if err != nil {
		Logger.Println("error:", err)
		return "", err
	}
	return value, nil
}

func SsmListParameters(ctx context.Context, client *ssm.Client, pathPrefix string) ([]ssmtypes.Parameter, error) {
	if doDebug {
		d := &Debug{start: time.Now(), name: "SsmListParameters"}
		defer d.Log()
	}
	var token *string
	var params []ssmtypes.Parameter
	for {
		out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:      aws.String(pathPrefix),
			Recursive: aws.Bool(true),
			NextToken: token,
		})
		if err != nil {
			Logger.Println("error:", err)
			return nil, err
		}
		params = append(params, out.Parameters...)
		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}
	return params, nil
}
