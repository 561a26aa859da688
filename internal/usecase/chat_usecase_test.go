package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
)

func TestSendRejectsBlankMessageBeforeNetwork(t *testing.T) {
	repo := &fakeChatRepo{}
	uc := NewChatUsecase(repo, newTestLogger())

	for _, message := range []string{"", "   ", "\n"} {
		if _, err := uc.Send(context.Background(), message); !errors.Is(err, entity.ErrEmptyMessage) {
			t.Fatalf("Send(%q) error = %v, want ErrEmptyMessage", message, err)
		}
	}
	if repo.sendCalls != 0 {
		t.Fatalf("blank message reached the server %d times", repo.sendCalls)
	}
}

func TestSendTrimsMessage(t *testing.T) {
	repo := &fakeChatRepo{reply: "Hello! Let's practice."}
	uc := NewChatUsecase(repo, newTestLogger())

	reply, err := uc.Send(context.Background(), "  how do I use 'although'? ")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if repo.lastSent != "how do I use 'although'?" {
		t.Fatalf("server saw %q, want trimmed message", repo.lastSent)
	}
	if reply != "Hello! Let's practice." {
		t.Fatalf("reply = %q", reply)
	}
}

func TestHistoryNormalizesPagination(t *testing.T) {
	repo := &fakeChatRepo{}
	uc := NewChatUsecase(repo, newTestLogger())

	if _, err := uc.History(context.Background(), repository.Pagination{}); err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if repo.lastPage.PageNo != 1 || repo.lastPage.PageSize != defaultPageSize {
		t.Fatalf("pagination = %+v, want defaults applied", repo.lastPage)
	}
}
