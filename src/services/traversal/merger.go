package traversal

import (
	"slices"
	"strings"

	"Backend-Survey-Engine/src/models"
)

// mergeAnswers writes the validated submission of the current unit into the session.
// A submitted answer replaces the stored one wholesale, so a custom answer drops the
// structured fields it supersedes and vice versa. Unit items left without an answer are
// removed from the answer map and logged in skipped.
func mergeAnswers(s *models.ResponseSession, u *unit, submitted map[string]models.ItemAnswer) {
	if u == nil {
		return
	}
	if s.Answer.Items == nil {
		s.Answer.Items = map[string]models.ItemAnswer{}
	}
	for _, it := range u.items {
		if it.Type == models.ItemTypeContents || it.Question == nil {
			continue
		}
		id := it.ID.Hex()
		a, ok := submitted[id]
		if ok && !a.IsEmpty() {
			s.Answer.Items[id] = a
			s.Answer.Skipped = remove(s.Answer.Skipped, id)
			s.Answer.SkippedByFlow = remove(s.Answer.SkippedByFlow, id)
			continue
		}
		delete(s.Answer.Items, id)
		s.Answer.Skipped = appendUnique(s.Answer.Skipped, id)
	}
}

// recordSkippedByFlow marks rule-elided items. An answer left from an earlier pass
// (step back, re-answer) is dropped since the item is no longer on the path.
func recordSkippedByFlow(s *models.ResponseSession, ids []string) {
	for _, id := range ids {
		delete(s.Answer.Items, id)
		s.Answer.Skipped = remove(s.Answer.Skipped, id)
		s.Answer.SkippedByFlow = appendUnique(s.Answer.SkippedByFlow, id)
	}
}

// mergeAssets adds submitted assets, replacing ones with the same item and url.
func mergeAssets(s *models.ResponseSession, assets []models.Asset) {
	for _, a := range assets {
		s.Assets = slices.DeleteFunc(s.Assets, func(old models.Asset) bool {
			return old.ItemID == a.ItemID && old.URL == a.URL
		})
		s.Assets = append(s.Assets, a)
	}
}

// detectDevice fills in the device type from the user agent when the client did not send one.
func detectDevice(d *models.Device) *models.Device {
	if d == nil {
		return nil
	}
	out := *d
	if out.Type != "" {
		return &out
	}
	ua := strings.ToLower(out.UserAgent)
	switch {
	case ua == "":
		out.Type = "desktop"
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet") ||
		(strings.Contains(ua, "android") && !strings.Contains(ua, "mobile")):
		out.Type = "tablet"
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "iphone") || strings.Contains(ua, "android"):
		out.Type = "mobile"
	default:
		out.Type = "desktop"
	}
	return &out
}

func appendUnique(list []string, id string) []string {
	if slices.Contains(list, id) {
		return list
	}
	return append(list, id)
}

func remove(list []string, id string) []string {
	return slices.DeleteFunc(list, func(s string) bool { return s == id })
}
