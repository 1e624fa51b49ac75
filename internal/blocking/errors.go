package blocking

import "errors"

// errWrongType is surfaced to a specific waiter when its blocking
// pop-and-push target key holds a non-List value (spec §4.5 step 2d). It is
// distinct from the command package's shared wrong-type reply because it
// travels over a Wake rather than through a handler's normal return path.
var errWrongType = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")
