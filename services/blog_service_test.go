package services

import (
	"context"
	"errors"
	"testing"

	"github.com/langmarket/api/database"
	"github.com/langmarket/api/model"
	"github.com/langmarket/api/utils/cache"
)

func TestListPostsOnlyPublishedAndCached(t *testing.T) {
	store := newFakeStore()
	store.addPost(model.BlogPost{Title: "Choosing a School in Dublin", Slug: "choosing-a-school-in-dublin", Status: model.PostStatusPublished})
	store.addPost(model.BlogPost{Title: "Unfinished Draft", Slug: "unfinished-draft", Status: model.PostStatusDraft})

	fc := newFakeCache()
	svc := NewBlogService(store, fc)
	ctx := context.Background()

	items, err := svc.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected only the published post, got %d items", len(items))
	}
	if items[0].Slug != "choosing-a-school-in-dublin" {
		t.Fatalf("unexpected slug %q", items[0].Slug)
	}

	if _, err := svc.ListPosts(ctx); err != nil {
		t.Fatalf("second ListPosts failed: %v", err)
	}
	if store.listPostCalls != 1 {
		t.Fatalf("expected cache hit to bypass the store, got %d store reads", store.listPostCalls)
	}
}

func TestGetPostBySlugDraftIsNotFound(t *testing.T) {
	store := newFakeStore()
	store.addPost(model.BlogPost{Title: "Draft", Slug: "draft-post", Status: model.PostStatusDraft})

	fc := newFakeCache()
	svc := NewBlogService(store, fc)

	_, err := svc.GetPostBySlug(context.Background(), "draft-post")
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("drafts must not be served publicly, got %v", err)
	}
	if fc.has(cache.BlogDetailKey("draft-post")) {
		t.Fatal("not-found outcome must not be cached")
	}
}

func TestCreatePostRejectsDuplicateSlug(t *testing.T) {
	store := newFakeStore()
	store.addPost(model.BlogPost{Title: "First", Slug: "shared-slug", Status: model.PostStatusPublished})

	svc := NewBlogService(store, newFakeCache())
	err := svc.CreatePost(context.Background(), &model.BlogPost{Title: "Second", Slug: "shared-slug"})
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestCreatePostInvalidatesListing(t *testing.T) {
	store := newFakeStore()
	fc := newFakeCache()
	fc.seed(cache.BlogListKey(), []model.BlogListItem{})

	svc := NewBlogService(store, fc)
	err := svc.CreatePost(context.Background(), &model.BlogPost{Title: "New Post", Slug: "new-post", Status: model.PostStatusPublished, AuthorID: 1})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}
	if fc.has(cache.BlogListKey()) {
		t.Error("blog listing must be invalidated after create")
	}
}

func TestUpdatePostRenameInvalidatesBothSlugs(t *testing.T) {
	store := newFakeStore()
	post := store.addPost(model.BlogPost{Title: "Post", Slug: "old-post", Status: model.PostStatusPublished})

	fc := newFakeCache()
	fc.seed(cache.BlogListKey(), []model.BlogListItem{})
	fc.seed(cache.BlogDetailKey("old-post"), post)

	svc := NewBlogService(store, fc)
	updated := *post
	updated.Slug = "new-post"
	if err := svc.UpdatePost(context.Background(), &updated, "old-post"); err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}

	if fc.has(cache.BlogDetailKey("old-post")) {
		t.Error("stale detail entry under the old slug must be dropped")
	}
	if fc.has(cache.BlogListKey()) {
		t.Error("blog listing must be invalidated after update")
	}
}

func TestDeletePostInvalidatesEntries(t *testing.T) {
	store := newFakeStore()
	post := store.addPost(model.BlogPost{Title: "Post", Slug: "doomed-post", Status: model.PostStatusPublished})

	fc := newFakeCache()
	fc.seed(cache.BlogListKey(), []model.BlogListItem{})
	fc.seed(cache.BlogDetailKey("doomed-post"), post)

	svc := NewBlogService(store, fc)
	if err := svc.DeletePost(context.Background(), post.ID); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	if fc.has(cache.BlogDetailKey("doomed-post")) || fc.has(cache.BlogListKey()) {
		t.Error("blog entries must be invalidated after delete")
	}
	if len(store.posts) != 0 {
		t.Fatal("post should be deleted")
	}
}
