package app

import (
	"github.com/sirupsen/logrus"

	"github.com/stulang/stulang/internal/adapter/rest"
	"github.com/stulang/stulang/internal/infrastructure/config"
	"github.com/stulang/stulang/internal/session"
	"github.com/stulang/stulang/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Session    *session.Manager
	Cycles     usecase.CycleUsecase
	CycleWords usecase.CycleWordUsecase
	Practice   usecase.PracticeUsecase
	Dictionary usecase.DictionaryUsecase
	Flashcards usecase.FlashcardUsecase
	Chat       usecase.ChatUsecase
}

// ProvideRuntime builds the HTTP client and the session manager. The
// two reference each other through callbacks: the client reads the
// bearer token from the session, and any 401 tears the session down.
func ProvideRuntime(cfg *config.Config, log *logrus.Logger) (*rest.Client, *session.Manager) {
	var sess *session.Manager
	client := rest.NewClient(rest.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Token: func() string {
			if sess == nil {
				return ""
			}
			return sess.Token()
		},
		OnUnauthorized: func() {
			if sess != nil {
				sess.Invalidate()
			}
		},
		Log: log,
	})
	sess = session.NewManager(cfg.Session.TokenFile, rest.NewAccountRepository(client), log)
	return client, sess
}

// ProvideCycleWordUsecase owns the item-store cache the other study
// usecases invalidate.
func ProvideCycleWordUsecase(client *rest.Client, log *logrus.Logger) usecase.CycleWordUsecase {
	return usecase.NewCycleWordUsecase(rest.NewCycleWordRepository(client), log)
}

// ProvideCycleUsecase invalidates the item store whenever a new cycle
// starts.
func ProvideCycleUsecase(client *rest.Client, log *logrus.Logger, words usecase.CycleWordUsecase) usecase.CycleUsecase {
	return usecase.NewCycleUsecase(rest.NewCycleRepository(client), log, words.Invalidate)
}

// ProvidePracticeUsecase marks the item store stale after every
// successful submission, since the server evicts promoted words.
func ProvidePracticeUsecase(client *rest.Client, log *logrus.Logger, words usecase.CycleWordUsecase) usecase.PracticeUsecase {
	return usecase.NewPracticeUsecase(rest.NewPracticeRepository(client), log, words.Invalidate)
}

func ProvideDictionaryUsecase(client *rest.Client, log *logrus.Logger) usecase.DictionaryUsecase {
	return usecase.NewDictionaryUsecase(rest.NewDictionaryRepository(client), log)
}

func ProvideFlashcardUsecase(client *rest.Client, log *logrus.Logger) usecase.FlashcardUsecase {
	return usecase.NewFlashcardUsecase(rest.NewCycleWordRepository(client), log)
}

func ProvideChatUsecase(client *rest.Client, log *logrus.Logger) usecase.ChatUsecase {
	return usecase.NewChatUsecase(rest.NewChatRepository(client), log)
}
