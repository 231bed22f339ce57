package ports

// ChangeNotifier pushes the file-set-changed signal to connected clients.
// Implementations are fire-and-forget: FilesChanged never returns an error
// because a delivery failure must not fail the mutation that triggered it.
type ChangeNotifier interface {
	FilesChanged()
}
