package media

import (
	"encoding/base64"
	"mime"
	"strings"

	dErrors "veriadmin/pkg/domain-errors"
)

// DataURL encodes data as an RFC 2397 base64 data URL.
func DataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURL decodes a base64 data URL into its media type and bytes.
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, dErrors.New(dErrors.CodeBadRequest, "not a data URL")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, dErrors.New(dErrors.CodeBadRequest, "data URL has no payload")
	}
	contentType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, dErrors.New(dErrors.CodeBadRequest, "data URL is not base64 encoded")
	}
	if contentType == "" {
		contentType = "text/plain"
	} else if _, _, err := mime.ParseMediaType(contentType); err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid data URL media type")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid data URL payload")
	}
	return contentType, data, nil
}
