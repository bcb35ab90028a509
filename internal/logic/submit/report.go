package submit

import (
	"encoding/json"
	"fmt"
	"io"

	"tx-submitter-sol/internal/types"

	"gopkg.in/yaml.v3"
)

// Result 是一次成功提交的结果
type Result struct {
	Signature  string           `json:"signature" yaml:"signature"`
	Slot       uint64           `json:"slot" yaml:"slot"`
	Commitment types.Commitment `json:"commitment" yaml:"commitment"`
	Payer      string           `json:"payer" yaml:"payer"`
	Program    string           `json:"program" yaml:"program"`
	Endpoint   string           `json:"endpoint" yaml:"endpoint"`
	Explorer   string           `json:"explorer" yaml:"explorer"`
}

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Reporter 将结果输出给操作者（默认 stdout）
type Reporter struct {
	w      io.Writer
	format string
}

func NewReporter(w io.Writer, format string) (*Reporter, error) {
	switch format {
	case "":
		format = FormatText
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
	return &Reporter{w: w, format: format}, nil
}

func (r *Reporter) Report(res *Result) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		defer enc.Close()
		return enc.Encode(res)
	default:
		_, err := fmt.Fprintf(r.w,
			"transaction confirmed\nsignature:  %s\ncommitment: %s (slot %d)\npayer:      %s\nprogram:    %s\nexplorer:   %s\n",
			res.Signature, res.Commitment, res.Slot, res.Payer, res.Program, res.Explorer)
		return err
	}
}
