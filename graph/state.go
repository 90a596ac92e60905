package graph

type UploadState int

const (
	StateStart UploadState = iota
	StateMetadataFetched
	StateContentsRead
	StateSessionOpen
	StateBodyBuilt
	StateMessageAuthorized
	StateSent
	StateCleaned
)

var stateNames = map[UploadState]string{
	StateStart:             "start",
	StateMetadataFetched:   "metadata_fetched",
	StateContentsRead:      "contents_read",
	StateSessionOpen:       "session_open",
	StateBodyBuilt:         "body_built",
	StateMessageAuthorized: "message_authorized",
	StateSent:              "sent",
	StateCleaned:           "cleaned",
}

func (s UploadState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
