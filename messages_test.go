package main

import (
	"testing"
)

func TestDecodeClientMessage(t *testing.T) {
	tests := []struct {
		name string
		data string
		want clientCommand
	}{
		{
			name: "join",
			data: `{"type":"join","roomId":"ABC123","playerName":"Alice","password":"pw"}`,
			want: &joinCommand{RoomID: "ABC123", PlayerName: "Alice", Password: "pw"},
		},
		{
			name: "start",
			data: `{"type":"start","roomId":"ABC123","imposterCount":2,"randomImposter":true,"showCategories":false}`,
			want: &startCommand{RoomID: "ABC123", ImposterCount: 2, RandomImposter: true, ShowCategories: false},
		},
		{
			name: "nextGame decodes like start",
			data: `{"type":"nextGame","roomId":"ABC123","imposterCount":1,"showCategories":true}`,
			want: &startCommand{RoomID: "ABC123", ImposterCount: 1, ShowCategories: true},
		},
		{
			name: "kickPlayer",
			data: `{"type":"kickPlayer","roomId":"ABC123","playerId":"p1"}`,
			want: &kickCommand{RoomID: "ABC123", PlayerID: "p1"},
		},
		{
			name: "updateImposterCount",
			data: `{"type":"updateImposterCount","roomId":"ABC123","imposterCount":3}`,
			want: &updateCountCommand{RoomID: "ABC123", ImposterCount: 3},
		},
		{
			name: "adminUpdate",
			data: `{"type":"adminUpdate","roomId":"ABC123","isAdmin":true}`,
			want: &adminClaimCommand{RoomID: "ABC123", IsAdmin: true},
		},
		{
			name: "emote",
			data: `{"type":"emote","roomId":"ABC123","playerId":"p1","emoteName":"heart"}`,
			want: &emoteCommand{RoomID: "ABC123", PlayerID: "p1", EmoteName: "heart"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeClientMessage([]byte(tc.data))
			if err != nil {
				t.Fatalf("unexpected decode error: %v", err)
			}

			switch want := tc.want.(type) {
			case *joinCommand:
				if *got.(*joinCommand) != *want {
					t.Errorf("got %+v, want %+v", got, want)
				}
			case *startCommand:
				if *got.(*startCommand) != *want {
					t.Errorf("got %+v, want %+v", got, want)
				}
			case *kickCommand:
				if *got.(*kickCommand) != *want {
					t.Errorf("got %+v, want %+v", got, want)
				}
			case *updateCountCommand:
				if *got.(*updateCountCommand) != *want {
					t.Errorf("got %+v, want %+v", got, want)
				}
			case *adminClaimCommand:
				if *got.(*adminClaimCommand) != *want {
					t.Errorf("got %+v, want %+v", got, want)
				}
			case *emoteCommand:
				if *got.(*emoteCommand) != *want {
					t.Errorf("got %+v, want %+v", got, want)
				}
			}
		})
	}
}

func TestDecodeUnknownType(t *testing.T) {
	for _, data := range []string{
		`{"type":"teleport","roomId":"ABC123"}`,
		`{"roomId":"ABC123"}`,
		`{}`,
	} {
		_, err := decodeClientMessage([]byte(data))
		if err == nil || err.Error() != "Unknown message type" {
			t.Errorf("decode(%s): expected unknown-type error, got %v", data, err)
		}
	}
}

func TestDecodeInvalidFormat(t *testing.T) {
	for _, data := range []string{
		`not json at all`,
		`{"type":`,
		`{"type":"start","imposterCount":"lots"}`,
		`{"type":"join","playerName":42}`,
	} {
		_, err := decodeClientMessage([]byte(data))
		if err == nil || err.Error() != "Invalid message format" {
			t.Errorf("decode(%s): expected invalid-format error, got %v", data, err)
		}
	}
}
