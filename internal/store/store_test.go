package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"uk.co.dudmesh.waggle/internal/model"
)

type testConfig struct {
	dir string
}

func (c testConfig) DataDirectory() string {
	return c.dir
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(testConfig{t.TempDir()})
	if err != nil {
		t.Fatalf("creating store: %+v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestUser(t *testing.T, store *Store, username string) *model.User {
	t.Helper()
	user := &model.User{
		ID:        model.UserID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		Status:    model.UserStatusActive,
		Username:  username,
		Email:     username + "@testdomain.com",
		Name:      "Test User",
		Password:  "not-a-real-hash",
	}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("creating user: %+v", err)
	}
	return user
}

func newTestPost(t *testing.T, store *Store, author model.UserID) *model.Post {
	t.Helper()
	post := &model.Post{
		ID:        model.PostID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		AuthorID:  author,
		Content:   "hello world",
	}
	if err := store.CreatePost(post); err != nil {
		t.Fatalf("creating post: %+v", err)
	}
	return post
}

func TestUsers(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	alice := newTestUser(t, store, "alice")

	t.Run("fetch by id and username", func(t *testing.T) {
		fetched, err := store.UserByID(alice.ID)
		assert.Nil(err)
		assert.Equal(alice.Username, fetched.Username)

		fetched, err = store.UserByUsername("alice")
		assert.Nil(err)
		assert.Equal(alice.ID, fetched.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := store.UserByUsername("nobody")
		assert.ErrorIs(err, model.ErrorUserNotFound)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		dup := &model.User{
			ID:        model.UserID(model.CreateID()),
			CreatedAt: time.Now().UTC(),
			Username:  "alice",
			Email:     "other@testdomain.com",
			Name:      "Other",
			Password:  "not-a-real-hash",
		}
		err := store.CreateUser(dup)
		assert.ErrorIs(err, model.ErrorDuplicateUser)

		_, err = store.UserByID(dup.ID)
		assert.ErrorIs(err, model.ErrorUserNotFound)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := &model.User{
			ID:        model.UserID(model.CreateID()),
			CreatedAt: time.Now().UTC(),
			Username:  "alice2",
			Email:     "alice@testdomain.com",
			Name:      "Other",
			Password:  "not-a-real-hash",
		}
		err := store.CreateUser(dup)
		assert.ErrorIs(err, model.ErrorDuplicateUser)
	})
}

func TestToggleFollow(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	alice := newTestUser(t, store, "alice")
	bob := newTestUser(t, store, "bob")

	t.Run("double toggle returns to initial state", func(t *testing.T) {
		outcome, err := store.ToggleFollow(alice.ID, bob.ID)
		assert.Nil(err)
		assert.Equal(model.ToggleCreated, outcome)

		following, err := store.IsFollowing(alice.ID, bob.ID)
		assert.Nil(err)
		assert.True(following)

		outcome, err = store.ToggleFollow(alice.ID, bob.ID)
		assert.Nil(err)
		assert.Equal(model.ToggleRemoved, outcome)

		following, err = store.IsFollowing(alice.ID, bob.ID)
		assert.Nil(err)
		assert.False(following)
	})

	t.Run("edge is directed", func(t *testing.T) {
		_, err := store.ToggleFollow(alice.ID, bob.ID)
		assert.Nil(err)

		following, err := store.IsFollowing(bob.ID, alice.ID)
		assert.Nil(err)
		assert.False(following)

		followers, err := store.Followers(bob.ID)
		assert.Nil(err)
		assert.Len(followers, 1)
		assert.Equal(alice.ID, followers[0].ID)

		following2, err := store.Following(alice.ID)
		assert.Nil(err)
		assert.Len(following2, 1)
		assert.Equal(bob.ID, following2[0].ID)
	})
}

func TestToggleLike(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	alice := newTestUser(t, store, "alice")
	bob := newTestUser(t, store, "bob")
	post := newTestPost(t, store, alice.ID)

	t.Run("double toggle restores count and state", func(t *testing.T) {
		view, err := store.PostView(post.ID, bob.ID)
		assert.Nil(err)
		assert.Equal(0, view.LikesCount)
		assert.False(view.IsLikedByUser)

		outcome, err := store.ToggleLike(bob.ID, post.ID)
		assert.Nil(err)
		assert.Equal(model.ToggleCreated, outcome)

		view, err = store.PostView(post.ID, bob.ID)
		assert.Nil(err)
		assert.Equal(1, view.LikesCount)
		assert.True(view.IsLikedByUser)

		outcome, err = store.ToggleLike(bob.ID, post.ID)
		assert.Nil(err)
		assert.Equal(model.ToggleRemoved, outcome)

		view, err = store.PostView(post.ID, bob.ID)
		assert.Nil(err)
		assert.Equal(0, view.LikesCount)
		assert.False(view.IsLikedByUser)
	})

	t.Run("like state is per viewer", func(t *testing.T) {
		_, err := store.ToggleLike(bob.ID, post.ID)
		assert.Nil(err)

		view, err := store.PostView(post.ID, alice.ID)
		assert.Nil(err)
		assert.Equal(1, view.LikesCount)
		assert.False(view.IsLikedByUser)

		view, err = store.PostView(post.ID, "")
		assert.Nil(err)
		assert.False(view.IsLikedByUser)
	})
}

func TestConcurrentToggles(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	alice := newTestUser(t, store, "alice")
	bob := newTestUser(t, store, "bob")

	for _, n := range []int{7, 8} {
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.ToggleFollow(alice.ID, bob.ID)
				assert.Nil(err)
			}()
		}
		wg.Wait()

		following, err := store.IsFollowing(alice.ID, bob.ID)
		assert.Nil(err)
		assert.Equal(n%2 == 1, following, "after %d toggles", n)

		// never more than one edge per pair
		followers, err := store.Followers(bob.ID)
		assert.Nil(err)
		assert.LessOrEqual(len(followers), 1)

		// reset to ABSENT for the next round
		if following {
			_, err = store.ToggleFollow(alice.ID, bob.ID)
			assert.Nil(err)
		}
	}
}

func TestPostsAndComments(t *testing.T) {
	assert := assert.New(t)
	store := newTestStore(t)

	alice := newTestUser(t, store, "alice")

	posts := make([]*model.Post, 0, 3)
	for i := 0; i < 3; i++ {
		post := &model.Post{
			ID:        model.PostID(model.CreateID()),
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
			AuthorID:  alice.ID,
			Content:   "post content",
		}
		assert.Nil(store.CreatePost(post))
		posts = append(posts, post)
	}

	t.Run("list newest first with paging", func(t *testing.T) {
		views, err := store.ListPosts("", 2, 0)
		assert.Nil(err)
		assert.Len(views, 2)
		assert.Equal(posts[2].ID, views[0].ID)

		total, err := store.CountPosts()
		assert.Nil(err)
		assert.Equal(3, total)
	})

	t.Run("list by author", func(t *testing.T) {
		views, err := store.ListPostsByAuthor(alice.ID, "")
		assert.Nil(err)
		assert.Len(views, 3)
		assert.Equal("alice", views[0].Author.Username)
	})

	t.Run("comments", func(t *testing.T) {
		comment := &model.Comment{
			ID:        model.CommentID(model.CreateID()),
			CreatedAt: time.Now().UTC(),
			PostID:    posts[0].ID,
			AuthorID:  alice.ID,
			Content:   "a comment",
		}
		assert.Nil(store.CreateComment(comment))

		view, err := store.CommentView(comment.ID)
		assert.Nil(err)
		assert.Equal("alice", view.Author.Username)

		views, err := store.ListCommentsByPost(posts[0].ID)
		assert.Nil(err)
		assert.Len(views, 1)
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := store.PostView(model.PostID(model.CreateID()), "")
		assert.ErrorIs(err, model.ErrorPostNotFound)
	})
}
