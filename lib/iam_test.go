package lib

import (
	"testing"
)

func TestIamPolicyEqual(t *testing.T) {
	type test struct {
		a      string
		b      string
		output bool
	}
	tests := []test{
		{`{"a": 1}`, `{ "a":1 }`, true},
		{`{"a": 1}`, `{"a": 2}`, false},
		{`{"a": [1, 2]}`, `{"a": [2, 1]}`, false},
	}
	for _, test := range tests {
		output, err := iamPolicyEqual(test.a, test.b)
		if err != nil {
			t.Fatal(err)
		}
		if output != test.output {
			t.Errorf("a: %s, b: %s, got: %v", test.a, test.b, output)
		}
	}
}

func TestSarPublishAllows(t *testing.T) {
	allows := sarPublishAllows()
	if len(allows) != 6 {
		t.Fatalf("got: %d allows, want: 6", len(allows))
	}
	actions := make(map[string]string)
	for _, allow := range allows {
		if allow.Resource == "" {
			t.Errorf("empty resource for action: %s", allow.Action)
		}
		actions[allow.Action] = allow.Resource
	}
	if actions["cloudformation:CreateChangeSet"] != "arn:aws:cloudformation:*:aws:transform/Serverless-2016-10-31" {
		t.Errorf("got: %s", actions["cloudformation:CreateChangeSet"])
	}
	if actions["lambda:PublishLayerVersion"] != "arn:aws:lambda:*:*:layer:AWSLambdaPowertoolsPythonV3*" {
		t.Errorf("got: %s", actions["lambda:PublishLayerVersion"])
	}
}

func TestIamAllowPolicyName(t *testing.T) {
	type test struct {
		allow  IamAllow
		output string
	}
	tests := []test{
		{IamAllow{Action: "s3:GetObject"}, "s3-GetObject"},
		{IamAllow{Action: "lambda:*"}, "lambda-ALL"},
	}
	for _, test := range tests {
		output := test.allow.policyName()
		if output != test.output {
			t.Errorf("got: %s, want: %s", output, test.output)
		}
	}
}
