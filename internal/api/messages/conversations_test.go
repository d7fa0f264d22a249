package messages

import (
	"testing"
	"time"

	"github.com/skyps2003/Freelancer/internal/models"
)

func msgAt(id, sender, receiver, content string, t time.Time) *models.Message {
	return &models.Message{ID: id, Sender: sender, Receiver: receiver, Content: content, CreatedAt: t}
}

func TestBuildConversations(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		msgs []*models.Message // newest first, as the stores return them
		want []ConversationPreview
	}{
		{
			name: "no messages",
			msgs: nil,
			want: []ConversationPreview{},
		},
		{
			name: "one partner newest message wins",
			msgs: []*models.Message{
				msgAt("m3", "bob", "alice", "hi", base.Add(2*time.Minute)),
				msgAt("m2", "alice", "bob", "hola", base.Add(time.Minute)),
				msgAt("m1", "alice", "bob", "first", base),
			},
			want: []ConversationPreview{
				{ID: "bob", LastMessage: "hi", Date: base.Add(2 * time.Minute)},
			},
		},
		{
			name: "partners ordered by recency of newest message",
			msgs: []*models.Message{
				msgAt("m4", "carol", "alice", "newest", base.Add(3*time.Minute)),
				msgAt("m3", "alice", "bob", "later", base.Add(2*time.Minute)),
				msgAt("m2", "bob", "alice", "earlier", base.Add(time.Minute)),
				msgAt("m1", "carol", "alice", "oldest", base),
			},
			want: []ConversationPreview{
				{ID: "carol", LastMessage: "newest", Date: base.Add(3 * time.Minute)},
				{ID: "bob", LastMessage: "later", Date: base.Add(2 * time.Minute)},
			},
		},
		{
			name: "caller as sender and receiver collapses to one entry",
			msgs: []*models.Message{
				msgAt("m2", "alice", "bob", "mine", base.Add(time.Minute)),
				msgAt("m1", "bob", "alice", "theirs", base),
			},
			want: []ConversationPreview{
				{ID: "bob", LastMessage: "mine", Date: base.Add(time.Minute)},
			},
		},
		{
			name: "equal timestamps resolved by store ID order",
			msgs: []*models.Message{
				// The store sorts equal timestamps by descending ID, so m9
				// arrives first and supplies the preview.
				msgAt("m9", "bob", "alice", "tie winner", base),
				msgAt("m8", "alice", "bob", "tie loser", base),
			},
			want: []ConversationPreview{
				{ID: "bob", LastMessage: "tie winner", Date: base},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildConversations("alice", tt.msgs)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d conversations, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i].ID {
					t.Errorf("entry %d: got partner %q, want %q", i, got[i].ID, tt.want[i].ID)
				}
				if got[i].LastMessage != tt.want[i].LastMessage {
					t.Errorf("entry %d: got preview %q, want %q", i, got[i].LastMessage, tt.want[i].LastMessage)
				}
				if !got[i].Date.Equal(tt.want[i].Date) {
					t.Errorf("entry %d: got date %v, want %v", i, got[i].Date, tt.want[i].Date)
				}
			}
		})
	}
}

func TestBuildConversationsSymmetric(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msgs := []*models.Message{
		msgAt("m2", "bob", "alice", "hi", base.Add(time.Minute)),
		msgAt("m1", "alice", "bob", "hola", base),
	}

	forAlice := buildConversations("alice", msgs)
	forBob := buildConversations("bob", msgs)

	if len(forAlice) != 1 || len(forBob) != 1 {
		t.Fatalf("expected one conversation on each side, got %d and %d", len(forAlice), len(forBob))
	}
	if forAlice[0].LastMessage != forBob[0].LastMessage {
		t.Errorf("previews differ: %q vs %q", forAlice[0].LastMessage, forBob[0].LastMessage)
	}
	if !forAlice[0].Date.Equal(forBob[0].Date) {
		t.Errorf("dates differ: %v vs %v", forAlice[0].Date, forBob[0].Date)
	}
}
