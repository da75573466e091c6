// Package translate formats user visible messages for the riscy toolchain
// in the language of the current locale.
package translate

import (
	"sync"

	"github.com/jeandeaual/go-locale"
	"github.com/tliron/commonlog"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var log = commonlog.GetLogger("riscy.translate")

var (
	mutex   sync.RWMutex
	current language.Tag
	printer *message.Printer
)

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Warningf("locale: %v", err)
	}

	SetLanguage(locales...)
}

// SetLanguage selects the best matching language from a list of BCP 47
// tags. An empty list selects en-US.
func SetLanguage(tags ...string) {
	if len(tags) == 0 {
		tags = []string{"en-US"}
	}

	tag := message.MatchLanguage(tags...)

	mutex.Lock()
	current = tag
	printer = message.NewPrinter(tag)
	mutex.Unlock()
}

// Language returns the language messages are currently formatted in.
func Language() language.Tag {
	mutex.RLock()
	defer mutex.RUnlock()

	return current
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	mutex.RLock()
	defer mutex.RUnlock()

	return printer.Sprintf(key, args...)
}
