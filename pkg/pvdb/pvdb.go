// Package pvdb parses pv_db.txt song databases: flat key=value files whose
// keys are dot-separated paths rooted at a pv_NNN song id.
package pvdb

import (
	"bufio"
	"strconv"
	"strings"
)

// Entry is one song declared in a pv_db file. Level slots are empty when the
// corresponding chart edition is absent.
type Entry struct {
	SongID         int32
	Name           string
	NameEn         string
	LevelEasy      string
	LevelNormal    string
	LevelHard      string
	LevelExtreme   string
	LevelExExtreme string
}

// Parse reads a pv_db.txt body. Unrecognized lines are skipped; entries come
// back in order of first appearance.
func Parse(content string) []Entry {
	byID := map[int32]*Entry{}
	var order []int32

	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		parts := strings.Split(key, ".")
		id, ok := songID(parts[0])
		if !ok {
			continue
		}

		entry := byID[id]
		if entry == nil {
			entry = &Entry{SongID: id}
			byID[id] = entry
			order = append(order, id)
		}

		apply(entry, parts[1:], value)
	}

	result := make([]Entry, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}

	return result
}

func songID(field string) (int32, bool) {
	rest, ok := strings.CutPrefix(field, "pv_")
	if !ok {
		return 0, false
	}

	n, err := strconv.ParseInt(rest, 10, 32)
	if err != nil {
		return 0, false
	}

	return int32(n), true
}

func apply(entry *Entry, path []string, value string) {
	switch {
	case len(path) == 1 && path[0] == "song_name":
		entry.Name = value
	case len(path) == 1 && path[0] == "song_name_en":
		entry.NameEn = value
	case len(path) == 4 && path[0] == "difficulty" && path[3] == "level":
		applyLevel(entry, path[1], path[2], NormalizeLevel(value))
	}
}

// applyLevel routes a difficulty level into its slot: easy/normal/hard keep
// the edition 0 chart, extreme keeps edition 0 and edition 1 separately.
func applyLevel(entry *Entry, difficulty, edition, level string) {
	switch difficulty {
	case "easy":
		if edition == "0" {
			entry.LevelEasy = level
		}
	case "normal":
		if edition == "0" {
			entry.LevelNormal = level
		}
	case "hard":
		if edition == "0" {
			entry.LevelHard = level
		}
	case "extreme":
		switch edition {
		case "0":
			entry.LevelExtreme = level
		case "1":
			entry.LevelExExtreme = level
		}
	}
}

// NormalizeLevel turns game tokens like PV_LV_06_5 into 6.5. Tokens in any
// other shape are returned unchanged.
func NormalizeLevel(value string) string {
	rest, ok := strings.CutPrefix(value, "PV_LV_")
	if !ok {
		return value
	}

	whole, frac, ok := strings.Cut(rest, "_")
	if !ok {
		return value
	}
	if _, err := strconv.Atoi(whole); err != nil {
		return value
	}
	if _, err := strconv.Atoi(frac); err != nil {
		return value
	}

	whole = strings.TrimLeft(whole, "0")
	if whole == "" {
		whole = "0"
	}

	return whole + "." + frac
}
