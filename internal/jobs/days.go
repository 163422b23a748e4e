package jobs

import (
	"strings"
	"time"
	"unicode"
)

// Day names a reminder's free-text "days" field may use, French and English,
// full or abbreviated.
var dayNames = map[string]time.Weekday{
	"lundi": time.Monday, "mardi": time.Tuesday, "mercredi": time.Wednesday,
	"jeudi": time.Thursday, "vendredi": time.Friday, "samedi": time.Saturday,
	"dimanche": time.Sunday,
	"monday":   time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
	"lun":    time.Monday, "mar": time.Tuesday, "mer": time.Wednesday,
	"jeu": time.Thursday, "ven": time.Friday, "sam": time.Saturday, "dim": time.Sunday,
	"mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday, "sun": time.Sunday,
}

var everyDay = []string{"tous les jours", "tlj", "every day", "everyday", "daily", "quotidien"}

// DueOn reports whether a reminder with the given days text fires on d.
// Empty text, "every day" phrases and text naming no recognizable day all
// mean every day. Ranges such as "Lun-Ven" wrap around the week.
func DueOn(days string, d time.Weekday) bool {
	text := strings.ToLower(strings.TrimSpace(days))
	if text == "" {
		return true
	}
	for _, phrase := range everyDay {
		if strings.Contains(text, phrase) {
			return true
		}
	}

	set, found := parseDays(text)
	if !found {
		return true
	}
	return set[d]
}

func parseDays(text string) (map[time.Weekday]bool, bool) {
	set := make(map[time.Weekday]bool, 7)
	found := false
	for _, token := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || unicode.IsSpace(r)
	}) {
		if from, to, ok := strings.Cut(token, "-"); ok {
			start, ok1 := lookupDay(from)
			end, ok2 := lookupDay(to)
			if ok1 && ok2 {
				found = true
				for w := start; ; w = (w + 1) % 7 {
					set[w] = true
					if w == end {
						break
					}
				}
			}
			continue
		}
		if w, ok := lookupDay(token); ok {
			set[w] = true
			found = true
		}
	}
	return set, found
}

func lookupDay(token string) (time.Weekday, bool) {
	token = strings.Trim(token, ".")
	w, ok := dayNames[token]
	return w, ok
}
