// Package report selects and writes an output format for a lint run.
package report

import (
	"bytes"
	"io"
	"strings"

	"layoutlint/internal/core/errors"
	"layoutlint/internal/shared/util"
	"layoutlint/internal/ui/report/formats"
)

type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatSARIF Format = "sarif"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatHuman, FormatJSON, FormatSARIF}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHuman, nil
	case FormatHuman, FormatJSON, FormatSARIF:
		return f, nil
	default:
		return "", errors.AddContext(errors.Newf(errors.CodeNotSupported, "unknown output format %q; expected human, json or sarif", s), errors.CtxFormat, s)
	}
}

type Report = formats.Report

var NewReport = formats.NewReport

// Render writes r to w in the given format.
func Render(w io.Writer, format Format, r Report) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = formats.GenerateJSON(r)
	case FormatSARIF:
		data, err = formats.GenerateSARIF(r)
	default:
		return formats.WriteHuman(w, r)
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "encode report")
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteFile renders r into path, creating parent directories.
func WriteFile(path string, format Format, r Report) error {
	var buf bytes.Buffer
	if err := Render(&buf, format, r); err != nil {
		return err
	}
	if err := util.WriteFileWithDirs(path, buf.Bytes(), 0o644); err != nil {
		return errors.AddContext(errors.Wrap(err, errors.CodeIO, "write report"), errors.CtxPath, path)
	}
	return nil
}
