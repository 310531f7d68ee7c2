package casegraph

import "errors"

// Domain errors returned by the mutation API. Callers map these to their own
// error taxonomy at the boundary.
var (
	ErrEmptyClaimID        = errors.New("claim id cannot be empty")
	ErrEmptyNodeID         = errors.New("node id cannot be empty")
	ErrEmptyEdgeID         = errors.New("edge id cannot be empty")
	ErrUnknownNodeKind     = errors.New("unknown node kind")
	ErrUnknownEdgeKind     = errors.New("unknown edge kind")
	ErrAmbiguousPayload    = errors.New("node must carry exactly one kind payload")
	ErrPayloadKindMismatch = errors.New("node payload does not match its kind")
	ErrDuplicateNodeID     = errors.New("node id already present in graph")
	ErrNodeNotFound        = errors.New("node not found in graph")
	ErrEdgeNotFound        = errors.New("edge not found in graph")
	ErrEdgeEndpointMissing = errors.New("edge endpoint not present in graph")
	ErrEdgeMissingEndpoint = errors.New("edge source and target are required")
	ErrKindImmutable       = errors.New("node kind cannot change on update")
	ErrInvalidWeight       = errors.New("edge weight must be between 0.0 and 1.0")
)
