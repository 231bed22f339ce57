package ws

// changeEvent is the single message shape the server ever pushes. Clients
// treat it as a refetch hint, not a diff.
const changeEvent = `{"event":"csv_list_updated"}`

// Notifier implements ports.ChangeNotifier on top of the registry.
type Notifier struct {
	registry *Registry
}

func NewNotifier(registry *Registry) *Notifier {
	return &Notifier{registry: registry}
}

// FilesChanged broadcasts the file-set-changed event to every connected
// client. One call per successful mutation; no batching.
func (n *Notifier) FilesChanged() {
	n.registry.Broadcast([]byte(changeEvent))
}
