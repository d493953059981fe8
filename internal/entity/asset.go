package entity

type AssetRef struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

var (
	AssetAerial    = AssetRef{Key: "aerial", Path: "assets/aerienne_exemple.jpg"}
	AssetCadastral = AssetRef{Key: "cadastral", Path: "assets/cadastral_exemple.jpg"}
	AssetDemoImage = AssetRef{Key: "demo_image", Path: "assets/demo_image.jpg"}
	AssetDemoMask  = AssetRef{Key: "demo_mask", Path: "assets/demo_mask.png"}
)

func Assets() []AssetRef {
	return []AssetRef{AssetAerial, AssetCadastral, AssetDemoImage, AssetDemoMask}
}

func AssetByKey(key string) (AssetRef, bool) {
	for _, ref := range Assets() {
		if ref.Key == key {
			return ref, true
		}
	}
	return AssetRef{}, false
}

type AssetInfo struct {
	Ref         AssetRef `json:"ref"`
	Size        int64    `json:"size"`
	ContentType string   `json:"content_type"`
	Available   bool     `json:"available"`
}
