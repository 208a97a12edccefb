package lib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

var iamClient *iam.Client
var iamClientLock sync.Mutex

func IamClientExplicit(accessKeyID, accessKeySecret, region string) *iam.Client {
	return iam.NewFromConfig(*SessionExplicit(accessKeyID, accessKeySecret, region))
}

func IamClient() *iam.Client {
	iamClientLock.Lock()
	defer iamClientLock.Unlock()
	if iamClient == nil {
		iamClient = iam.NewFromConfig(*Session())
	}
	return iamClient
}

type IamAllow struct {
	Action   string
	Resource string
}

func (a *IamAllow) String() string {
	return fmt.Sprintf("%s %s", a.Action, a.Resource)
}

func (a *IamAllow) policyDocument() string {
	return `{"Version": "2012-10-17",
             "Statement": [{"Effect": "Allow",
                            "Action": "` + a.Action + `",
                            "Resource": "` + a.Resource + `"}]}`
}

func (a *IamAllow) policyName() string {
	name := strings.ReplaceAll(a.Action, "*", "ALL")
	name = strings.ReplaceAll(name, ":", "-")
	return name
}

func iamPolicyEqual(a, b string) (bool, error) {
	var x, y any
	err := json.Unmarshal([]byte(a), &x)
	if err != nil {
		Logger.Println("error:", err)
		return false, err
	}
	err = json.Unmarshal([]byte(b), &y)
	if err != nil {
		Logger.Println("error:", err)
		return false, err
	}
	return reflect.DeepEqual(x, y), nil
}

func iamAssumePolicyDocument(principalName string) (*string, error) {
	if strings.Contains(principalName, ".") {
		err := fmt.Errorf("principal should be '$name', not '$name.amazonaws.com', got: %s", principalName)
		Logger.Println("error:", err)
		return nil, err
	}
	return aws.String(`{"Version": "2012-10-17",
                        "Statement": [{"Effect": "Allow",
                                       "Principal": {"Service": "` + principalName + `.amazonaws.com"},
                                       "Action": "sts:AssumeRole"}]}`), nil
}

// sarPublishAllows is the least-privilege grant set for publishing the layer
// through the serverless application repository: change sets on the
// serverless transform, template access on the published application, the
// changeset staging bucket, and the layer name prefix.
func sarPublishAllows() []*IamAllow {
	return []*IamAllow{
		{
			Action:   "cloudformation:CreateChangeSet",
			Resource: "arn:aws:cloudformation:*:aws:transform/Serverless-2016-10-31",
		},
		{
			Action:   "serverlessrepo:CreateCloudFormationTemplate",
			Resource: "arn:aws:serverlessrepo:*:*:applications/aws-lambda-powertools-python-layer*",
		},
		{
			Action:   "serverlessrepo:GetCloudFormationTemplate",
			Resource: "arn:aws:serverlessrepo:*:*:applications/aws-lambda-powertools-python-layer*",
		},
		{
			Action:   "s3:GetObject",
			Resource: "arn:aws:s3:::awsserverlessrepo-changesets*/*",
		},
		{
			Action:   "lambda:PublishLayerVersion",
			Resource: "arn:aws:lambda:*:*:layer:" + layerNamePrefix + "*",
		},
		{
			Action:   "lambda:GetLayerVersion",
			Resource: "arn:aws:lambda:*:*:layer:" + layerNamePrefix + "*",
		},
	}
}

// IamEnsureSarPublishRole creates or updates the role the upstream packaging
// step assumes to publish the layer. Idempotent, previewable.
func IamEnsureSarPublishRole(ctx context.Context, roleName, principalName string, preview bool) error {
	if doDebug {
		d := &Debug{start: time.Now(), name: "IamEnsureSarPublishRole"}
		defer d.Log()
	}
	policyDocument, err := iamAssumePolicyDocument(principalName)
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	_, err = IamClient().GetRole(ctx, &iam.GetRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		var nse *iamtypes.NoSuchEntityException
		if !errors.As(err, &nse) {
			Logger.Println("error:", err)
			return err
		}
		if !preview {
			_, err = IamClient().CreateRole(ctx, &iam.CreateRoleInput{
				RoleName:                 aws.String(roleName),
				AssumeRolePolicyDocument: policyDocument,
			})
			if err != nil {
				Logger.Println("error:", err)
				return err
			}
		}
		Logger.Println(PreviewString(preview)+"created role:", roleName, principalName)
	}
	for _, allow := range sarPublishAllows() {
		out, err := IamClient().GetRolePolicy(ctx, &iam.GetRolePolicyInput{
			RoleName:   aws.String(roleName),
			PolicyName: aws.String(allow.policyName()),
		})
		if err != nil {
			var nse *iamtypes.NoSuchEntityException
			if !errors.As(err, &nse) && !preview {
				Logger.Println("error:", err)
				return err
			}
		} else {
			document, err := url.QueryUnescape(*out.PolicyDocument)
			if err != nil {
				Logger.Println("error:", err)
				return err
			}
			equal, err := iamPolicyEqual(document, allow.policyDocument())
			if err != nil {
				Logger.Println("error:", err)
				return err
			}
			if equal {
				continue
			}
		}
		if !preview {
			_, err := IamClient().PutRolePolicy(ctx, &iam.PutRolePolicyInput{
				RoleName:       aws.String(roleName),
				PolicyName:     aws.String(allow.policyName()),
				PolicyDocument: aws.String(allow.policyDocument()),
			})
			if err != nil {
				Logger.Println("error:", err)
				return err
			}
		}
		Logger.Println(PreviewString(preview)+"attached role allow:", roleName, allow)
	}
	return nil
}
