package content

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

const (
	yamlFence = "---"
	tomlFence = "+++"
)

// ParseFrontMatter splits raw into metadata and body. It fails with a
// PARSE_ERROR when the front matter is missing, unterminated, not valid
// YAML/TOML, has non-scalar values, or lacks a title.
func ParseFrontMatter(raw []byte) (Metadata, string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))

	fence, header, body, err := splitFrontMatter(raw)
	if err != nil {
		return Metadata{}, "", err
	}

	fields := map[string]any{}
	switch fence {
	case yamlFence:
		if err := yaml.Unmarshal(header, &fields); err != nil {
			return Metadata{}, "", perrors.Wrap(perrors.ErrCodeParse, err, "invalid YAML front matter")
		}
	case tomlFence:
		if _, err := toml.Decode(string(header), &fields); err != nil {
			return Metadata{}, "", perrors.Wrap(perrors.ErrCodeParse, err, "invalid TOML front matter")
		}
	}

	meta, err := metadataFromFields(fields)
	if err != nil {
		return Metadata{}, "", err
	}
	return meta, string(body), nil
}

func splitFrontMatter(raw []byte) (fence string, header, body []byte, err error) {
	lines := bytes.SplitAfter(raw, []byte("\n"))
	if len(lines) == 0 {
		return "", nil, nil, perrors.New(perrors.ErrCodeParse, "document is empty")
	}
	fence = string(bytes.TrimSpace(lines[0]))
	if fence != yamlFence && fence != tomlFence {
		return "", nil, nil, perrors.New(perrors.ErrCodeParse, "document must start with a %s or %s front matter fence", yamlFence, tomlFence)
	}

	offset := len(lines[0])
	for _, line := range lines[1:] {
		if string(bytes.TrimSpace(line)) == fence {
			header = raw[len(lines[0]):offset]
			body = bytes.TrimLeft(raw[offset+len(line):], "\n")
			return fence, header, body, nil
		}
		offset += len(line)
	}
	return "", nil, nil, perrors.New(perrors.ErrCodeParse, "front matter is not terminated by %s", fence)
}

func metadataFromFields(fields map[string]any) (Metadata, error) {
	var m Metadata
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, err := scalarString(fields[k])
		if err != nil {
			return Metadata{}, perrors.Wrap(perrors.ErrCodeParse, err, "front matter field %q", k)
		}
		switch k {
		case "title":
			m.Title = v
		case "subtitle":
			m.Subtitle = v
		case "date":
			m.Date = v
		case "role":
			m.Role = v
		case "client":
			m.Client = v
		case "introduction":
			m.Introduction = v
		default:
			if m.Extra == nil {
				m.Extra = map[string]string{}
			}
			m.Extra[k] = v
		}
	}
	if m.Title == "" {
		return Metadata{}, perrors.New(perrors.ErrCodeParse, "front matter needs a title")
	}
	return m, nil
}

// scalarString renders a decoded YAML or TOML scalar as text.
func scalarString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case time.Time:
		// TOML local dates arrive as midnight in the toml.LocalDate zone.
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02"), nil
		}
		return x.Format(time.RFC3339), nil
	}
	return "", fmt.Errorf("must be a scalar, got %T", v)
}
