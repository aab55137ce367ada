package migrate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		want      []string
		wantErr   bool
	}{
		{name: "all", requested: []string{"labels", "properties", "metadata"}, want: AvailableSteps},
		{name: "execution order enforced", requested: []string{"metadata", "labels"}, want: []string{"labels", "metadata"}},
		{name: "comma separated", requested: []string{"properties, Labels"}, want: []string{"labels", "properties"}},
		{name: "duplicates collapsed", requested: []string{"labels", "labels"}, want: []string{"labels"}},
		{name: "unknown step", requested: []string{"labels", "webhooks"}, wantErr: true},
		{name: "empty", requested: []string{" , "}, wantErr: true},
		{name: "nil", requested: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSteps(tt.requested)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSteps() error = %v, wantErr %v", err, tt.wantErr)
			}

			if diff := cmp.Diff(tt.want, got); !tt.wantErr && diff != "" {
				t.Errorf("ParseSteps() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNew_InvalidSteps(t *testing.T) {
	opts := defaultOptions()
	opts.Steps = []string{"everything"}

	if _, err := New(nil, nil, nil, opts); err == nil {
		t.Error("Expected an error for an unknown step")
	}
}

func TestNew_StepsCopied(t *testing.T) {
	env := newTestEnv(t, defaultOptions())

	steps := env.migrator.Steps()
	steps[0] = "changed"

	if env.migrator.Steps()[0] != StepLabels {
		t.Error("Expected Steps() to return a copy")
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name    string
		results []Result
		want    Result
	}{
		{
			name:    "all succeeded",
			results: []Result{succeeded("Success"), succeeded(noPropertiesMessage), succeeded(metadataNotFoundMessage)},
			want:    Result{Status: Success, Message: "Success"},
		},
		{
			name:    "one failed",
			results: []Result{succeeded("Success"), failed("boom"), succeeded("Success")},
			want:    Result{Status: Failed, Message: "properties: boom"},
		},
		{
			name:    "failures joined",
			results: []Result{failed("first"), succeeded("Success"), failed("second")},
			want:    Result{Status: Failed, Message: "labels: first; metadata: second"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, combine(AvailableSteps, tt.results)); diff != "" {
				t.Errorf("combine() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
