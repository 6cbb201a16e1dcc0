// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-03-02
// Last Modified: 2026-03-02

package text

import "time"

// GoogleTimeLayout is the fixed timestamp format used by the Google Code
// feeds.
const GoogleTimeLayout = "2006-01-02T15:04:05.000Z"

// humanLayout is embedded in migrated issue and comment headers. It takes
// part in comment de-duplication across runs, so it must never change.
const humanLayout = "January 02, 2006 15:04:05"

// HumanDate renders a Google Code timestamp in the human-readable form used
// by migration headers. Unparseable input is passed through untouched rather
// than aborting a whole run over one malformed feed entry.
func HumanDate(published string) string {
	t, err := time.Parse(GoogleTimeLayout, published)
	if err != nil {
		return published
	}
	return t.Format(humanLayout)
}
