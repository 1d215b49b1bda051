package unify

import "net/url"

// StoreURL returns the store page for a native id on platform p.
func StoreURL(p Platform, id string) (string, bool) {
	if id == "" {
		return "", false
	}
	escaped := url.PathEscape(id)

	switch p {
	case Steam:
		return "https://store.steampowered.com/app/" + escaped, true
	case Xbox:
		return "https://www.xbox.com/games/store/" + escaped, true
	case GOG:
		return "https://www.gog.com/game/" + escaped, true
	case Epic:
		return "https://store.epicgames.com/p/" + escaped, true
	case Amazon:
		return "https://gaming.amazon.com/" + escaped, true
	}
	return "", false
}

// StoreLink is a store page for one platform a game is owned on.
type StoreLink struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
}

// StoreLinks returns one link per appId entry, in platform processing order.
func (g UnifiedGame) StoreLinks() []StoreLink {
	var links []StoreLink
	for _, p := range Platforms() {
		id, ok := g.AppID[p.Key()]
		if !ok {
			continue
		}
		if u, ok := StoreURL(p, id); ok {
			links = append(links, StoreLink{Platform: p, URL: u})
		}
	}
	return links
}
