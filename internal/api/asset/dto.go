package asset

import "BatiDetect/internal/entity"

type AssetsResponse struct {
	Data []entity.AssetInfo `json:"data"`
}

// Content is one served file.
type Content struct {
	Body        []byte
	ContentType string
}
