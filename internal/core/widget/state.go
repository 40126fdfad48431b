package widget

import "weatherwidget.app/internal/core/weather"

// GenericErrorMessage is the only failure text ever shown to the user
const GenericErrorMessage = "Something went wrong."

// NotFoundMessage is the banner text for an unknown city
const NotFoundMessage = "City Not Found"

// Kind discriminates ViewState variants
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindError
	KindNotFound
	KindReady
)

// String returns the wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	case KindNotFound:
		return "not_found"
	case KindReady:
		return "ready"
	default:
		return "idle"
	}
}

// ViewState is the single current UI mode. The set of implementations is
// closed: Idle, Loading, Failed, NotFound and Ready.
type ViewState interface {
	Kind() Kind
	viewState()
}

// Idle is the state before the first submit
type Idle struct{}

// Loading is the state while a submit is in flight
type Loading struct{}

// Failed carries the user-facing message of a transient failure
type Failed struct {
	Message string
}

// NotFound is the state after the API reported an unknown city
type NotFound struct{}

// Ready carries the record of the latest successful lookup
type Ready struct {
	Record weather.Record
}

func (Idle) Kind() Kind     { return KindIdle }
func (Loading) Kind() Kind  { return KindLoading }
func (Failed) Kind() Kind   { return KindError }
func (NotFound) Kind() Kind { return KindNotFound }
func (Ready) Kind() Kind    { return KindReady }

func (Idle) viewState()     {}
func (Loading) viewState()  {}
func (Failed) viewState()   {}
func (NotFound) viewState() {}
func (Ready) viewState()    {}

// Update is delivered to listeners on every state transition
type Update struct {
	Seq   uint64
	Query string
	State ViewState
}
