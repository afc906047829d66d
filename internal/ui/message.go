package ui

// catalogLoadedMsg signals the catalog controller finished its fetch. The
// listing itself lives in the controller; the message only carries the error.
type catalogLoadedMsg struct {
	err error
}

// detailLoadedMsg signals the detail controller finished loading an entry.
type detailLoadedMsg struct {
	err error
}

// collectionLoadedMsg signals the collection controller finished its fetch.
type collectionLoadedMsg struct {
	err error
}

// usersLoadedMsg signals the user directory finished its fetch.
type usersLoadedMsg struct {
	err error
}

// adminLoadedMsg signals the management view finished its fetch.
type adminLoadedMsg struct {
	err error
}

// actionDoneMsg signals a mutation (add, status change, removal) finished.
// refresh names the view whose listing should be rebuilt.
type actionDoneMsg struct {
	refresh ViewState
	err     error
}
