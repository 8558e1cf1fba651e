package bill

import (
	"fmt"
	"time"
)

// frenchMonths holds the capitalized three-letter French month
// abbreviations used in the bill table. June and July both shorten to
// "Jui", which is the label employees have always seen.
var frenchMonths = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Jui",
	"Jui", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

// FormatDate renders a raw YYYY-MM-DD date as a short French display
// date, e.g. "2004-04-04" becomes "4 Avr. 04". A value that does not
// parse is returned unchanged so one corrupt record cannot break a
// whole list render.
func FormatDate(raw string) string {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%d %s. %02d", t.Day(), frenchMonths[t.Month()-1], t.Year()%100)
}

// FormatStatus maps a status code to its employee-facing label.
// Unrecognized codes pass through unchanged.
func FormatStatus(raw string) string {
	switch raw {
	case StatusPending:
		return "En attente"
	case StatusAccepted:
		return "Accepté"
	case StatusRefused:
		return "Refused"
	}
	return raw
}
