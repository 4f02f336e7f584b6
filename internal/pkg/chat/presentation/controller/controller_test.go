package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"go-confab/internal/infrastructure/auth"
	chat "go-confab/internal/pkg/chat/application/domain"
	"go-confab/internal/pkg/chat/application/usecase"
	"go-confab/internal/pkg/chat/persistence/repository/adapter"
	"go-confab/internal/pkg/chat/presentation/controller"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// actorHeader carries the acting user's id in tests, standing in for the
// Bearer token the real middleware validates.
const actorHeader = "X-Test-User"

func newTestRouter(repo *adapter.MemoryChatRepository) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader(actorHeader); id != "" {
			auth.SetUserID(c, id)
		}
		c.Next()
	})

	resolveCtl := &controller.ResolveDirectChatController{UC: usecase.NewResolveDirectChatUseCase(repo, nil)}
	listCtl := &controller.ListChatsController{UC: usecase.NewListChatsUseCase(repo)}
	createCtl := &controller.CreateGroupChatController{UC: usecase.NewCreateGroupChatUseCase(repo)}
	renameCtl := &controller.RenameGroupController{UC: usecase.NewRenameGroupUseCase(repo)}
	addCtl := &controller.AddMemberController{UC: usecase.NewAddMemberUseCase(repo)}
	removeCtl := &controller.RemoveMemberController{UC: usecase.NewRemoveMemberUseCase(repo)}
	postMsgCtl := &controller.PostMessageController{UC: usecase.NewPostMessageUseCase(repo)}
	getMsgCtl := &controller.GetMessagesController{UC: usecase.NewGetMessagesUseCase(repo)}

	r.POST("/chat", resolveCtl.Handle())
	r.GET("/chat", listCtl.Handle())
	r.POST("/chat/group", createCtl.Handle())
	r.PUT("/chat/group/rename", renameCtl.Handle())
	r.PUT("/chat/group/add", addCtl.Handle())
	r.PUT("/chat/group/remove", removeCtl.Handle())
	r.POST("/chat/:chatId/messages", postMsgCtl.Handle())
	r.GET("/chat/:chatId/messages", getMsgCtl.Handle())
	return r
}

func do(r *gin.Engine, method, path, actor string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(actorHeader, actor)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeView(rec *httptest.ResponseRecorder) chat.ConversationView {
	var view chat.ConversationView
	Expect(json.Unmarshal(rec.Body.Bytes(), &view)).To(Succeed())
	return view
}

var _ = Describe("Chat endpoints", func() {
	var (
		repo    *adapter.MemoryChatRepository
		router  *gin.Engine
		alice   string
		bob     string
		charlie string
		mallory string
	)

	seed := func(name string) string {
		id := uuid.NewString()
		repo.SeedUser(chat.UserView{
			ID:    id,
			Name:  name,
			Email: name + "@example.com",
			Pic:   "https://example.com/" + name + ".png",
		})
		return id
	}

	createGroup := func(actor string, members ...string) chat.ConversationView {
		rec := do(router, http.MethodPost, "/chat/group", actor, gin.H{
			"name":     "Team",
			"user_ids": members,
		})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		return decodeView(rec)
	}

	BeforeEach(func() {
		repo = adapter.NewMemoryChatRepository()
		router = newTestRouter(repo)
		alice = seed("alice")
		bob = seed("bob")
		charlie = seed("charlie")
		mallory = seed("mallory")
	})

	Describe("resolving a direct chat", func() {
		It("creates the conversation on first contact and reuses it afterwards", func() {
			first := do(router, http.MethodPost, "/chat", alice, gin.H{"user_id": bob})
			Expect(first.Code).To(Equal(http.StatusOK))
			view := decodeView(first)
			Expect(view.Kind).To(Equal(chat.KindDirect))
			Expect(view.Participants).To(HaveLen(2))

			second := do(router, http.MethodPost, "/chat", bob, gin.H{"user_id": alice})
			Expect(second.Code).To(Equal(http.StatusOK))
			Expect(decodeView(second).ID).To(Equal(view.ID))
		})

		It("rejects a missing or malformed target", func() {
			Expect(do(router, http.MethodPost, "/chat", alice, gin.H{}).Code).To(Equal(http.StatusBadRequest))
			Expect(do(router, http.MethodPost, "/chat", alice, gin.H{"user_id": "not-a-uuid"}).Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects chatting with yourself", func() {
			rec := do(router, http.MethodPost, "/chat", alice, gin.H{"user_id": alice})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown target", func() {
			rec := do(router, http.MethodPost, "/chat", alice, gin.H{"user_id": uuid.NewString()})
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("never exposes credentials in the payload", func() {
			rec := do(router, http.MethodPost, "/chat", alice, gin.H{"user_id": bob})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(strings.ToLower(rec.Body.String())).NotTo(ContainSubstring("password"))
		})
	})

	Describe("creating a group chat", func() {
		It("returns the group with the creator as admin, listed last", func() {
			view := createGroup(alice, bob, charlie)
			Expect(view.Kind).To(Equal(chat.KindGroup))
			Expect(view.Name).To(Equal("Team"))
			Expect(view.Participants).To(HaveLen(3))
			Expect(view.Participants[2].ID).To(Equal(alice))
			Expect(view.Admin).NotTo(BeNil())
			Expect(view.Admin.ID).To(Equal(alice))
		})

		It("rejects groups below the minimum size", func() {
			rec := do(router, http.MethodPost, "/chat/group", alice, gin.H{
				"name":     "Team",
				"user_ids": []string{bob},
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects malformed member ids", func() {
			rec := do(router, http.MethodPost, "/chat/group", alice, gin.H{
				"name":     "Team",
				"user_ids": []string{bob, "nope"},
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("renaming a group", func() {
		It("lets any participant rename", func() {
			group := createGroup(alice, bob, charlie)
			rec := do(router, http.MethodPut, "/chat/group/rename", bob, gin.H{
				"chat_id": group.ID,
				"name":    "New Name",
			})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeView(rec).Name).To(Equal("New Name"))
		})

		It("refuses outsiders", func() {
			group := createGroup(alice, bob, charlie)
			rec := do(router, http.MethodPut, "/chat/group/rename", mallory, gin.H{
				"chat_id": group.ID,
				"name":    "Hijacked",
			})
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("returns 404 for an unknown chat", func() {
			rec := do(router, http.MethodPut, "/chat/group/rename", alice, gin.H{
				"chat_id": uuid.NewString(),
				"name":    "Anything",
			})
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("managing membership", func() {
		It("adds a member when a participant asks", func() {
			group := createGroup(alice, bob, charlie)
			dave := seed("dave")
			rec := do(router, http.MethodPut, "/chat/group/add", bob, gin.H{
				"chat_id": group.ID,
				"user_id": dave,
			})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeView(rec).Participants).To(HaveLen(4))
		})

		It("only the admin removes others", func() {
			group := createGroup(alice, bob, charlie)
			rec := do(router, http.MethodPut, "/chat/group/remove", bob, gin.H{
				"chat_id": group.ID,
				"user_id": charlie,
			})
			Expect(rec.Code).To(Equal(http.StatusForbidden))

			rec = do(router, http.MethodPut, "/chat/group/remove", alice, gin.H{
				"chat_id": group.ID,
				"user_id": charlie,
			})
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decodeView(rec).Participants).To(HaveLen(2))
		})

		It("lets anyone leave on their own", func() {
			group := createGroup(alice, bob, charlie)
			rec := do(router, http.MethodPut, "/chat/group/remove", bob, gin.H{
				"chat_id": group.ID,
				"user_id": bob,
			})
			Expect(rec.Code).To(Equal(http.StatusOK))
			view := decodeView(rec)
			for _, p := range view.Participants {
				Expect(p.ID).NotTo(Equal(bob))
			}
		})

		It("refuses membership changes on direct chats", func() {
			direct := decodeView(do(router, http.MethodPost, "/chat", alice, gin.H{"user_id": bob}))
			rec := do(router, http.MethodPut, "/chat/group/add", alice, gin.H{
				"chat_id": direct.ID,
				"user_id": charlie,
			})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("listing chats", func() {
		It("orders by most recent activity", func() {
			direct := decodeView(do(router, http.MethodPost, "/chat", alice, gin.H{"user_id": bob}))
			group := createGroup(alice, bob, charlie)

			rec := do(router, http.MethodGet, "/chat", alice, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var listing struct {
				Chats []chat.ConversationView `json:"chats"`
				Count int                     `json:"count"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &listing)).To(Succeed())
			Expect(listing.Count).To(Equal(2))
			Expect(listing.Chats[0].ID).To(Equal(group.ID))

			// a message in the direct chat moves it to the front
			post := do(router, http.MethodPost, fmt.Sprintf("/chat/%s/messages", direct.ID), bob, gin.H{"body": "hey"})
			Expect(post.Code).To(Equal(http.StatusCreated))

			rec = do(router, http.MethodGet, "/chat", alice, nil)
			Expect(json.Unmarshal(rec.Body.Bytes(), &listing)).To(Succeed())
			Expect(listing.Chats[0].ID).To(Equal(direct.ID))
			Expect(listing.Chats[0].LatestMessage).NotTo(BeNil())
			Expect(listing.Chats[0].LatestMessage.Sender.ID).To(Equal(bob))
		})

		It("excludes chats the user is not part of", func() {
			createGroup(alice, bob, charlie)

			rec := do(router, http.MethodGet, "/chat", mallory, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var listing struct {
				Count int `json:"count"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &listing)).To(Succeed())
			Expect(listing.Count).To(BeZero())
		})
	})

	Describe("messages", func() {
		It("posts and pages messages for participants", func() {
			group := createGroup(alice, bob, charlie)
			for _, body := range []string{"one", "two", "three"} {
				rec := do(router, http.MethodPost, fmt.Sprintf("/chat/%s/messages", group.ID), alice, gin.H{"body": body})
				Expect(rec.Code).To(Equal(http.StatusCreated))
			}

			rec := do(router, http.MethodGet, fmt.Sprintf("/chat/%s/messages?limit=2", group.ID), bob, nil)
			Expect(rec.Code).To(Equal(http.StatusOK))
			var page struct {
				Messages []chat.MessageView `json:"messages"`
				Count    int                `json:"count"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &page)).To(Succeed())
			Expect(page.Count).To(Equal(2))
			Expect(*page.Messages[0].Body).To(Equal("three"))
		})

		It("refuses outsiders", func() {
			group := createGroup(alice, bob, charlie)
			rec := do(router, http.MethodGet, fmt.Sprintf("/chat/%s/messages", group.ID), mallory, nil)
			Expect(rec.Code).To(Equal(http.StatusForbidden))

			rec = do(router, http.MethodPost, fmt.Sprintf("/chat/%s/messages", group.ID), mallory, gin.H{"body": "hi"})
			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})
	})
})
