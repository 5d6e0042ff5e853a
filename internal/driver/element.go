package driver

// Element is one node of a native message chain. Text, At and Face are built
// by the translator; media elements are produced by the driver's upload
// operations and passed back opaquely.
type Element interface{ element() }

// Text is a plain text run.
type Text struct {
	Content string
}

// At mentions one member, or everyone when Target is 0.
type At struct {
	Target  int64
	Display string
}

// Face is a built-in emoticon.
type Face struct {
	Index int32
	Name  string
}

// GroupImage is an image already uploaded to a group's media store.
type GroupImage struct {
	ImageID string
	MD5     []byte
	Size    int32
	URL     string
}

// FriendImage is an image already uploaded for a private conversation.
type FriendImage struct {
	ImageID string
	MD5     []byte
	Size    int32
	URL     string
}

// ShortVideo is a video already uploaded through the short-video API.
type ShortVideo struct {
	UUID []byte
	MD5  []byte
	Size int32
	Name string
}

func (Text) element()        {}
func (At) element()          {}
func (Face) element()        {}
func (GroupImage) element()  {}
func (FriendImage) element() {}
func (ShortVideo) element()  {}
