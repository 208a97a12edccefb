package lib

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"golang.org/x/sync/semaphore"
)

const (
	layerAccount    = "017000801446"
	layerNamePrefix = "AWSLambdaPowertoolsPythonV3"
	paramRoot       = "/aws/service/powertools"
	latestAlias     = "latest"
)

type Environment string

const (
	EnvBeta Environment = "beta"
	EnvProd Environment = "prod"
)

// ParseEnvironment accepts any casing. The upstream trigger declares the
// option as "Beta" but the consumer historically compared against "beta",
// so the input is normalized here.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(s) {
	case "beta":
		return EnvBeta, nil
	case "prod", "":
		return EnvProd, nil
	default:
		err := fmt.Errorf("environment should be beta or prod, got: %s", s)
		Logger.Println("error:", err)
		return "", err
	}
}

func EnvPrefix(env Environment) string {
	if env == EnvBeta {
		return paramRoot + "/beta"
	}
	return paramRoot
}

type RuntimeTarget struct {
	RuntimeVersion string `yaml:"runtime"`
	Architecture   string `yaml:"arch"`
}

// LayerName is the layer name without region or account, example:
// AWSLambdaPowertoolsPythonV3-python38-arm64
func LayerName(target RuntimeTarget) string {
	runtime := strings.ReplaceAll(target.RuntimeVersion, ".", "")
	return fmt.Sprintf("%s-python%s-%s", layerNamePrefix, runtime, target.Architecture)
}

type LayerRelease struct {
	Env            Environment
	PackageVersion string
	LayerVersion   int
	Region         string
	WriteLatest    bool
}

type ParamRecord struct {
	Path  string
	Value string
}

var packageVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)
var runtimeVersionPattern = regexp.MustCompile(`^\d+\.\d+$`)

func (r *LayerRelease) Validate() error {
	if !packageVersionPattern.MatchString(r.PackageVersion) {
		return fmt.Errorf("package version should look like 3.1.0, got: %s", r.PackageVersion)
	}
	if r.LayerVersion < 1 {
		return fmt.Errorf("layer version should be a positive integer, got: %d", r.LayerVersion)
	}
	if r.Region == "" {
		return fmt.Errorf("region is required")
	}
	return nil
}

func ValidateTargets(targets []RuntimeTarget) error {
	if len(targets) == 0 {
		return fmt.Errorf("runtime matrix is empty")
	}
	for _, target := range targets {
		if !runtimeVersionPattern.MatchString(target.RuntimeVersion) {
			return fmt.Errorf("runtime version should look like 3.13, got: %s", target.RuntimeVersion)
		}
		if !Contains([]string{"arm64", "x86_64"}, target.Architecture) {
			return fmt.Errorf("architecture should be arm64 or x86_64, got: %s", target.Architecture)
		}
	}
	return nil
}

func ParamPath(env Environment, target RuntimeTarget, version string) string {
	return fmt.Sprintf("%s/python/%s/python%s/%s", EnvPrefix(env), target.Architecture, target.RuntimeVersion, version)
}

func LayerArn(region string, target RuntimeTarget, layerVersion int) string {
	return fmt.Sprintf("arn:aws:lambda:%s:%s:layer:%s:%d", region, layerAccount, LayerName(target), layerVersion)
}

// LayerRecords derives the full record set for a release. The set is fully
// determined by the release and the matrix, and every record is an
// independent commutative upsert.
func LayerRecords(r *LayerRelease, targets []RuntimeTarget) []ParamRecord {
	var records []ParamRecord
	for _, target := range targets {
		value := LayerArn(r.Region, target, r.LayerVersion)
		records = append(records, ParamRecord{
			Path:  ParamPath(r.Env, target, r.PackageVersion),
			Value: value,
		})
		if r.WriteLatest {
			records = append(records, ParamRecord{
				Path:  ParamPath(r.Env, target, latestAlias),
				Value: value,
			})
		}
	}
	return records
}

type ssmPutAPI interface {
	PutParameter(ctx context.Context, input *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// LayerPublish upserts every record for one region. Fail-fast: the first
// rejected write aborts the remaining records, already written records stay
// written, re-running with identical inputs converges on the same state.
func LayerPublish(ctx context.Context, client ssmPutAPI, r *LayerRelease, targets []RuntimeTarget) error {
	if doDebug {
		d := &Debug{start: time.Now(), name: "LayerPublish"}
		defer d.Log()
	}
	err := r.Validate()
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	err = ValidateTargets(targets)
	if err != nil {
		Logger.Println("error:", err)
		return err
	}
	for _, record := range LayerRecords(r, targets) {
		_, err := client.PutParameter(ctx, &ssm.PutParameterInput{
			Name:      aws.String(record.Path),
			Value:     aws.String(record.Value),
			Type:      ssmtypes.ParameterTypeString,
			Overwrite: aws.Bool(true),
		})
		if err != nil {
			Logger.Println("error:", err)
			return err
		}
		Logger.Println("put:", record.Path, record.Value)
	}
	return nil
}

type layerPublishResult struct {
	region string
	err    error
}

// LayerPublishRegions fans LayerPublish out across regions with bounded
// concurrency. Regions are independent, ordering between them carries no
// meaning, the last error wins as the return value and every failed region
// is logged.
func LayerPublishRegions(ctx context.Context, release *LayerRelease, regions []string, targets []RuntimeTarget, maxConcurrency int) error {
	return layerPublishRegions(ctx, func(region string) (ssmPutAPI, error) {
		return SSMClientRegion(region)
	}, release, regions, targets, maxConcurrency)
}

func layerPublishRegions(ctx context.Context, clients func(region string) (ssmPutAPI, error), release *LayerRelease, regions []string, targets []RuntimeTarget, maxConcurrency int) error {
	if doDebug {
		d := &Debug{start: time.Now(), name: "LayerPublishRegions"}
		defer d.Log()
	}
	if maxConcurrency < 1 {
		maxConcurrency = len(regions)
	}
	resultChan := make(chan *layerPublishResult, len(regions))
	concurrency := semaphore.NewWeighted(int64(maxConcurrency))
	cancelCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for _, region := range regions {
		go func() {
			err := concurrency.Acquire(cancelCtx, 1)
			if err != nil {
				resultChan <- &layerPublishResult{region: region, err: err}
				return
			}
			defer concurrency.Release(1)
			client, err := clients(region)
			if err != nil {
				resultChan <- &layerPublishResult{region: region, err: err}
				return
			}
			r := *release
			r.Region = region
			resultChan <- &layerPublishResult{region: region, err: LayerPublish(cancelCtx, client, &r, targets)}
		}()
	}
	var errLast error
	for range regions {
		result := <-resultChan
		if result.err != nil {
			errLast = result.err
			Logger.Println("error:", result.region, result.err)
		} else {
			Logger.Println("published:", result.region)
		}
	}
	return errLast
}
