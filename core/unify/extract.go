package unify

import (
	"fmt"

	"library-compare/core/utils"
)

const steamIconURL = "https://media.steampowered.com/steamcommunity/public/images/apps/%s/%s.jpg"

// fields is the platform-independent view of a raw record.
type fields struct {
	id       string
	playtime *int
	// zeroPlaytime keeps a zero playtime in the merged map; otherwise only
	// non-zero values are recorded there.
	zeroPlaytime bool
	images       Images
	genres       []string
}

// playtimeKey reports whether the playtime belongs in the merged playtime map.
func (f fields) playtimeKey() bool {
	return f.playtime != nil && (*f.playtime != 0 || f.zeroPlaytime)
}

// extract pulls identifier, playtime, images and genres out of a raw record.
// This is the only platform-aware step of the merge.
func extract(p Platform, raw RawGame) (fields, bool) {
	switch p {
	case Steam:
		appID := utils.ToString(firstTruthy(raw, "appid"))
		minutes := 0
		if v := raw["playtime_forever"]; utils.Truthy(v) {
			minutes = utils.ToInt(v)
		}
		f := fields{
			id:           utils.ToString(firstTruthy(raw, "appid", "id")),
			playtime:     &minutes,
			zeroPlaytime: true,
			images:       Images{Header: stringField(raw, "header_image")},
		}
		if icon := stringField(raw, "img_icon_url"); icon != "" && appID != "" {
			f.images.Icon = fmt.Sprintf(steamIconURL, appID, icon)
		}
		return f, true

	case Xbox:
		header := stringField(raw, "displayImage")
		if header == "" {
			header = imageByType(raw["images"], "BoxArt", "Poster")
		}
		genres := genreNames(raw["genres"])
		if len(genres) == 0 {
			if detail, ok := utils.ToMap(raw["detail"]); ok {
				genres = genreNames(detail["genres"])
			}
		}
		return fields{
			id:       utils.ToString(firstTruthy(raw, "titleId", "id")),
			playtime: numberField(raw, "playtime"),
			images:   Images{Header: header},
			genres:   genres,
		}, true

	case GOG:
		return fields{
			id:     utils.ToString(firstTruthy(raw, "id")),
			images: Images{Header: stringField(raw, "image")},
			genres: genreNames(raw["genres"]),
		}, true

	case Epic:
		genres := genreNames(raw["genres"])
		if len(genres) == 0 {
			genres = categoryPaths(raw["categories"])
		}
		return fields{
			id: utils.ToString(firstTruthy(raw, "catalogItemId", "id")),
			images: Images{
				Header: imageByType(raw["keyImages"], "DieselGameBoxTall", "DieselGameBox"),
				Icon:   imageByType(raw["keyImages"], "Thumbnail"),
			},
			genres: genres,
		}, true

	case Amazon:
		return fields{
			id:       utils.ToString(firstTruthy(raw, "id")),
			playtime: numberField(raw, "playtime"),
			images:   Images{Header: imageByType(raw["images"])},
			genres:   genreNames(raw["genres"]),
		}, true
	}

	return fields{}, false
}

// firstTruthy returns the first truthy value among keys.
func firstTruthy(raw RawGame, keys ...string) any {
	for _, key := range keys {
		if v := raw[key]; utils.Truthy(v) {
			return v
		}
	}
	return nil
}

func stringField(raw RawGame, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}

// numberField returns a pointer to the value at key when it is a number.
func numberField(raw RawGame, key string) *int {
	v, ok := raw[key]
	if !ok || !utils.IsNumber(v) {
		return nil
	}
	n := utils.ToInt(v)
	return &n
}

// genreNames accepts a list of strings or of {"name": string|LocaleMap} objects.
func genreNames(value any) []string {
	items, ok := utils.ToSlice(value)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if obj, ok := utils.ToMap(item); ok {
			if s := titleFromValue(obj["name"]).value(); s != "" {
				out = append(out, s)
			}
			continue
		}
		if s := utils.ToString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// categoryPaths collects categories[].path.
func categoryPaths(value any) []string {
	items, ok := utils.ToSlice(value)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		obj, ok := utils.ToMap(item)
		if !ok {
			continue
		}
		if path := utils.ToString(obj["path"]); path != "" {
			out = append(out, path)
		}
	}
	return out
}

// imageByType returns the url of the first image entry whose type matches one of
// types, in order of preference. With no types, the first entry with a url wins.
func imageByType(value any, types ...string) string {
	items, ok := utils.ToSlice(value)
	if !ok {
		return ""
	}
	entries := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := utils.ToMap(item); ok && utils.ToString(obj["url"]) != "" {
			entries = append(entries, obj)
		}
	}
	if len(types) == 0 {
		if len(entries) == 0 {
			return ""
		}
		return utils.ToString(entries[0]["url"])
	}
	for _, want := range types {
		for _, obj := range entries {
			if utils.ToString(obj["type"]) == want {
				return utils.ToString(obj["url"])
			}
		}
	}
	return ""
}
