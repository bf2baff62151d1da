// Package format renders stored values for display in Chilean Spanish.
// Nothing here feeds back into the dataset.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

// SetLocale switches the number printer, e.g. to "es" for regions without
// CLDR data. Call it once at startup.
func SetLocale(locale string) error {
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	printer = message.NewPrinter(tag)
	return nil
}

// Currency formats a CLP amount as $85.000. CLP has no minor unit.
func Currency(amount int64) string {
	if amount < 0 {
		return "-$" + Number(-amount)
	}
	return "$" + Number(amount)
}

// Number formats an integer with es-CL thousands separators.
func Number(n int64) string {
	return printer.Sprint(number.Decimal(n))
}

// Date renders dd-mm-yyyy, with hh:mm appended when withTime is set.
// The zero time renders as an empty string.
func Date(t time.Time, withTime bool) string {
	if t.IsZero() {
		return ""
	}
	if withTime {
		return t.Format("02-01-2006 15:04")
	}
	return t.Format("02-01-2006")
}

// Relative renders t relative to now: minutes, hours and days for the last
// week, a plain date after that.
func Relative(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Ahora mismo"
	case minutes < 60:
		return fmt.Sprintf("Hace %d min", minutes)
	case hours < 24:
		return fmt.Sprintf("Hace %dh", hours)
	case days < 7:
		return fmt.Sprintf("Hace %dd", days)
	}
	return Date(t, false)
}

var months = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return months[m-1]
}

var labels = map[string]string{
	"owner":             "Propietario",
	"tenant":            "Arrendatario",
	"vacant":            "Vacante",
	"paid":              "Pagado",
	"pending":           "Pendiente",
	"in_progress":       "En Proceso",
	"completed":         "Completado",
	"confirmed":         "Confirmada",
	"low":               "Baja",
	"medium":            "Media",
	"high":              "Alta",
	"urgent":            "Urgente",
	"multipurpose_room": "Salón Multiuso",
	"bbq_area":          "Quincho",
	"pool":              "Piscina",
	"all":               "Todos",
}

// Label translates an enum value to its Spanish display text.
// Unknown values are returned as-is.
func Label(value string) string {
	if l, ok := labels[value]; ok {
		return l
	}
	return value
}
