// Package identity hands out human-readable instance labels of the form
// "<Class>-<n>", numbered per class.
package identity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/xid"
	"github.com/sarchlab/hookscope/idgen"
)

// ErrRegistryKeyCollision signals that an instance was labeled twice. It is a
// programming error and is raised with panic.
var ErrRegistryKeyCollision = errors.New("identity: instance label collision")

// Registry assigns per-class sequence numbers to newly constructed instances.
// The zero value is not usable; use NewRegistry.
type Registry struct {
	lock     sync.Mutex
	counters map[string]*idgen.Sequence
	issued   map[string]struct{}
	epoch    string
}

// NewRegistry creates an empty registry with a fresh epoch.
func NewRegistry() *Registry {
	r := &Registry{}
	r.reset()

	return r
}

// NextLabel returns "<className>-<n>", where n starts at 1 for every class
// and increments on every call for that class.
func (r *Registry) NextLabel(className string) string {
	r.lock.Lock()
	defer r.lock.Unlock()

	seq, ok := r.counters[className]
	if !ok {
		seq = idgen.NewSequence()
		r.counters[className] = seq
	}

	label := FormatLabel(className, uint64(seq.Next()))
	if _, dup := r.issued[label]; dup {
		panic(fmt.Errorf("%w: %s issued twice in epoch %s",
			ErrRegistryKeyCollision, label, r.epoch))
	}

	r.issued[label] = struct{}{}

	return label
}

// Issued tells if the label was handed out in the current epoch.
func (r *Registry) Issued(label string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()

	_, ok := r.issued[label]

	return ok
}

// Reset starts a new epoch: every class counts from 1 again.
func (r *Registry) Reset() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.reset()
}

func (r *Registry) reset() {
	r.counters = make(map[string]*idgen.Sequence)
	r.issued = make(map[string]struct{})
	r.epoch = xid.New().String()
}

// Epoch identifies the current epoch. It changes on every Reset.
func (r *Registry) Epoch() string {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.epoch
}

// FormatLabel builds the label of the n-th instance of a class.
func FormatLabel(className string, n uint64) string {
	return className + "-" + strconv.FormatUint(n, 10)
}

// ParseLabel splits a label into class name and sequence number. Class names
// may themselves contain dashes; the number follows the last one.
func ParseLabel(label string) (className string, n uint64, ok bool) {
	i := strings.LastIndexByte(label, '-')
	if i <= 0 || i == len(label)-1 {
		return "", 0, false
	}

	n, err := strconv.ParseUint(label[i+1:], 10, 64)
	if err != nil || n == 0 {
		return "", 0, false
	}

	return label[:i], n, true
}
