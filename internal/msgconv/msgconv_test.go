package msgconv

import (
	"context"
	"encoding/base64"
	"reflect"
	"testing"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/driver/drivertest"
	"github.com/nextlevelbuilder/pbgate/internal/uri"
	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

func TestToWire(t *testing.T) {
	elems := []driver.Element{
		driver.Text{Content: "hello"},
		driver.At{Target: 123, Display: "@someone"},
		driver.At{Target: 0},
		driver.Face{Index: 14},
		driver.GroupImage{URL: "https://example.com/a.png"},
	}
	want := []*onebot.Message{
		{Type: "text", Data: map[string]string{"text": "hello"}},
		{Type: "at", Data: map[string]string{"qq": "123"}},
		{Type: "at", Data: map[string]string{"qq": "all"}},
		{Type: "face", Data: map[string]string{"id": "14"}},
		{Type: "image", Data: map[string]string{"url": "https://example.com/a.png"}},
	}
	if got := ToWire(elems); !reflect.DeepEqual(got, want) {
		t.Errorf("ToWire:\n got %+v\nwant %+v", got, want)
	}
}

func TestXMLRoundTrip(t *testing.T) {
	msgs := []*onebot.Message{
		{Type: "text", Data: map[string]string{"text": `a < b & "c"`}},
		{Type: "at", Data: map[string]string{"qq": "10002"}},
		{Type: "face", Data: map[string]string{"id": "5"}},
	}
	rendered := ToXML(msgs)
	parsed := FromXML(rendered)
	if ToXML(parsed) != rendered {
		t.Errorf("round trip changed rendering:\n first %q\nsecond %q", rendered, ToXML(parsed))
	}
	if len(parsed) != len(msgs) {
		t.Fatalf("parsed %d elements, want %d", len(parsed), len(msgs))
	}
	if parsed[0].Data["text"] != msgs[0].Data["text"] {
		t.Errorf("text = %q, want %q", parsed[0].Data["text"], msgs[0].Data["text"])
	}
	if parsed[1].Data["qq"] != "10002" || parsed[2].Data["id"] != "5" {
		t.Errorf("attributes lost: %+v", parsed[1:])
	}
}

func TestFromXMLMalformed(t *testing.T) {
	got := FromXML(`ok<at qq="1"/><broken`)
	if len(got) < 2 {
		t.Fatalf("got %d elements, want the well-formed prefix", len(got))
	}
	if got[0].Data["text"] != "ok" || got[1].Data["qq"] != "1" {
		t.Errorf("prefix not preserved: %+v", got)
	}
}

func TestFromXMLNoSyntheticRoot(t *testing.T) {
	for _, m := range FromXML(`plain text`) {
		if m.Type == "a" {
			t.Fatal("synthetic root leaked into output")
		}
	}
}

func TestToNativeText(t *testing.T) {
	c := NewConverter(uri.NewFetcher(), "")
	client := drivertest.New(10001)

	got := c.ToNative(context.Background(), client, Target{Uin: 100},
		[]*onebot.Message{{Type: "text", Data: map[string]string{"text": `<at qq="7"/>`}}}, true)
	want := []driver.Element{driver.Text{Content: `<at qq="7"/>`}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("auto_escape=true: got %+v, want %+v", got, want)
	}

	got = c.ToNative(context.Background(), client, Target{Uin: 100},
		[]*onebot.Message{{Type: "text", Data: map[string]string{"text": `hi<at qq="7"/>`}}}, false)
	want = []driver.Element{
		driver.Text{Content: "hi"},
		driver.At{Target: 7, Display: "@7"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("auto_escape=false: got %+v, want %+v", got, want)
	}
}

func TestToNativeImageUpload(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	msgs := []*onebot.Message{{Type: "image", Data: map[string]string{"url": "base64://" + payload}}}
	c := NewConverter(uri.NewFetcher(), "")

	client := drivertest.New(10001)
	client.UploadElem = driver.GroupImage{ImageID: "up.png"}
	got := c.ToNative(context.Background(), client, Target{GroupCode: 7}, msgs, true)
	if !reflect.DeepEqual(got, []driver.Element{driver.GroupImage{ImageID: "up.png"}}) {
		t.Errorf("group upload: got %+v", got)
	}
	if len(client.CallsOf("UploadGroupImage")) != 1 {
		t.Error("UploadGroupImage not called")
	}

	client = drivertest.New(10001)
	client.UploadElem = driver.FriendImage{ImageID: "up.png"}
	c.ToNative(context.Background(), client, Target{Uin: 100}, msgs, true)
	if len(client.CallsOf("UploadFriendImage")) != 1 {
		t.Error("UploadFriendImage not called for private target")
	}
}

func TestToNativeUnknownDropped(t *testing.T) {
	c := NewConverter(uri.NewFetcher(), "")
	client := drivertest.New(10001)
	got := c.ToNative(context.Background(), client, Target{Uin: 100},
		[]*onebot.Message{{Type: "dice", Data: map[string]string{}}}, true)
	if len(got) != 0 {
		t.Errorf("unknown element survived: %+v", got)
	}
}
