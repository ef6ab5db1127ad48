package mongoindex

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"modarc/internal/domain/model"
)

const (
	PostCollection = "posts"
	SongCollection = "songs"
)

// Index is the search store. It holds denormalized projections only; the
// relational store stays authoritative and read paths reconcile drift.
type Index struct {
	DBName       string
	QueryTimeout time.Duration
	Client       *mongo.Client
}

func Connect(cfg Config) (*Index, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ConnectionTimeout)*time.Millisecond)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(time.Duration(cfg.ConnectionTimeout) * time.Millisecond).
		SetBSONOptions(&options.BSONOptions{
			UseJSONStructTags: true,
			NilSliceAsEmpty:   true,
		})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	qCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.QueryTimeout)*time.Millisecond)
	defer cancel()

	if err := client.Ping(qCtx, nil); err != nil {
		return nil, err
	}

	idx := &Index{
		Client:       client,
		DBName:       cfg.DBName,
		QueryTimeout: time.Duration(cfg.QueryTimeout) * time.Millisecond,
	}

	if err := idx.initCollections(); err != nil {
		return nil, err
	}

	return idx, nil
}

func (i *Index) initCollections() error {
	ctx, cancel := context.WithTimeout(context.Background(), i.QueryTimeout)
	defer cancel()

	posts := i.collection(PostCollection)
	_, err := posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: "text"}, {Key: "text", Value: "text"}, {Key: "author_names", Value: "text"}},
	})
	if err != nil {
		return err
	}

	songs := i.collection(SongCollection)
	_, err = songs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "post_id", Value: 1}},
	})

	return err
}

func (i *Index) collection(name string) *mongo.Collection {
	return i.Client.Database(i.DBName).Collection(name)
}

func (i *Index) UpsertPost(ctx context.Context, doc *model.PostDocument) error {
	ctx, cancel := context.WithTimeout(ctx, i.QueryTimeout)
	defer cancel()

	_, err := i.collection(PostCollection).ReplaceOne(ctx,
		bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))

	return err
}

func (i *Index) UpsertSongs(ctx context.Context, docs []model.SongDocument) error {
	if len(docs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, i.QueryTimeout)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(docs))
	for idx := range docs {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": docs[idx].ID}).
			SetReplacement(docs[idx]).
			SetUpsert(true))
	}

	_, err := i.collection(SongCollection).BulkWrite(ctx, writes)

	return err
}

func (i *Index) SearchPosts(ctx context.Context, query, sort string, offset, limit int64) ([]model.PostDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, i.QueryTimeout)
	defer cancel()

	filter := bson.M{}
	if query != "" {
		filter["$text"] = bson.M{"$search": query}
	}

	opts := options.Find().
		SetSkip(offset).
		SetLimit(limit).
		SetSort(sortSpec(sort))

	cur, err := i.collection(PostCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []model.PostDocument
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func sortSpec(sort string) bson.D {
	switch sort {
	case "downloads":
		return bson.D{{Key: "download_count", Value: -1}}
	case "likes":
		return bson.D{{Key: "like_count", Value: -1}}
	default:
		return bson.D{{Key: "uploaded_at", Value: -1}}
	}
}

func (i *Index) SongsByPost(ctx context.Context, postID int64) ([]model.SongDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, i.QueryTimeout)
	defer cancel()

	cur, err := i.collection(SongCollection).Find(ctx, bson.M{"post_id": postID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []model.SongDocument
	if err := cur.All(ctx, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (i *Index) DeletePost(ctx context.Context, postID int64) error {
	ctx, cancel := context.WithTimeout(ctx, i.QueryTimeout)
	defer cancel()

	_, err := i.collection(PostCollection).DeleteOne(ctx, bson.M{"_id": postID})

	return err
}

func (i *Index) DeleteSongsByPost(ctx context.Context, postID int64) error {
	ctx, cancel := context.WithTimeout(ctx, i.QueryTimeout)
	defer cancel()

	_, err := i.collection(SongCollection).DeleteMany(ctx, bson.M{"post_id": postID})

	return err
}

func (i *Index) Stop() error {
	return i.Client.Disconnect(context.Background())
}
