// Package diagfmt reads and writes EEPROM images in the ASCII form used
// over the printer's diagnostic port: optional "#"-prefixed comment lines
// followed by the image bytes in hex, 32 characters per line.
package diagfmt

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const lineWidth = 32

func Dump(image []byte, comments []string) []byte {
	builder := strings.Builder{}
	for _, comment := range comments {
		builder.WriteString("# " + comment + "\n")
	}
	encoded := hex.EncodeToString(image)
	lo.ForEach(
		lo.Chunk([]byte(encoded), lineWidth),
		func(line []byte, _ int) {
			builder.Write(line)
			builder.WriteString("\n")
		},
	)
	return []byte(builder.String())
}

// Parse ignores comments, blank lines, and surrounding whitespace, and
// hex-decodes whatever remains.
func Parse(bs []byte) ([]byte, error) {
	builder := strings.Builder{}
	for _, line := range strings.Split(string(bs), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		builder.WriteString(line)
	}
	image, err := hex.DecodeString(builder.String())
	if err != nil {
		return nil, errors.Wrap(err, "diagfmt.Parse error")
	}
	return image, nil
}
