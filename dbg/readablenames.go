package dbg

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts pointers into random readable names, which are much easier to
// tell apart in a tree dump than hex addresses. Names are generated lazily and
// remembered until Reset, so the memo only grows while something is being
// dumped.

var (
	memoLock sync.Mutex
	memo     = make(map[interface{}]string)
	taken    = make(map[string]struct{})
)

func init() {
	// Since the names are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Name for obj, stable for the life of the process (or until Reset). Nil
// pointers are named "Ø".
func Name(obj interface{}) string {
	if obj == nil {
		return "Ø"
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
		return "Ø"
	}

	memoLock.Lock()
	defer memoLock.Unlock()

	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	// Petnames collide eventually; suffix a counter to keep names unique
	for i := 2; ; i++ {
		if _, ok := taken[r]; !ok {
			break
		}
		r = fmt.Sprintf("%s%s%d", strings.Title(petname.Adjective()), strings.Title(petname.Name()), i)
	}
	taken[r] = struct{}{}
	memo[obj] = r
	return r
}

// Forget every name handed out so far.
func Reset() {
	memoLock.Lock()
	defer memoLock.Unlock()
	memo = make(map[interface{}]string)
	taken = make(map[string]struct{})
}
