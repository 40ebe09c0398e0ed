package activity

import "errors"

// ErrActuation wraps a failed affinity change; the engine keeps its previous mode.
var ErrActuation = errors.New("activity: actuation failed")
