// Package locale renders user-facing message strings. The engine only
// depends on the T function; when no catalog has been loaded the key itself
// is returned so analysis stays fully functional without localization.
package locale

import (
	"fmt"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	catalog map[string]string
)

// SetCatalog installs the active message catalog. Passing nil resets the
// subsystem to its uninitialized state.
func SetCatalog(messages map[string]string) {
	mu.Lock()
	defer mu.Unlock()
	catalog = messages
}

// T resolves a message key and interpolates {name} placeholders from params.
// An unknown key (or uninitialized catalog) yields the key unchanged, with
// parameters still applied so callers always get a usable message.
func T(key string, params map[string]interface{}) string {
	mu.RLock()
	msg, ok := catalog[key]
	mu.RUnlock()
	if !ok {
		msg = key
	}

	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{"+name+"}", fmt.Sprintf("%v", value))
	}
	return msg
}
