package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hitoshi/hanji/internal/identifier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// entriesCollection はエントリを格納するコレクション名。
const entriesCollection = "words"

// MongoEntryStore はMongoDBを使用したエントリストア。
type MongoEntryStore struct {
	col *mongo.Collection
}

// NewMongoEntryStore はMongoEntryStoreを生成する。
func NewMongoEntryStore(db *mongo.Database) *MongoEntryStore {
	return &MongoEntryStore{col: db.Collection(entriesCollection)}
}

// FindByTerm は見出し語の完全一致でエントリを検索する。
func (s *MongoEntryStore) FindByTerm(ctx context.Context, term string) ([]EntryRecord, error) {
	cur, err := s.col.Find(ctx, bson.M{"term": term})
	if err != nil {
		return nil, fmt.Errorf("見出し語によるエントリの検索に失敗しました: %w", err)
	}
	defer cur.Close(ctx)

	var records []EntryRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("エントリ行の読み取りに失敗しました: %w", err)
	}
	return records, nil
}

// FindByKey は解決済みキーでエントリを1件取得する。見つからない場合はnilを返す。
func (s *MongoEntryStore) FindByKey(ctx context.Context, key identifier.Key) (*EntryRecord, error) {
	rec := &EntryRecord{}
	err := s.col.FindOne(ctx, bson.M{"_id": key.BSON()}).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("IDによるエントリの取得に失敗しました: %w", err)
	}
	return rec, nil
}

// FindExamples はエントリのexamplesフィールドのみを射影して取得する。
func (s *MongoEntryStore) FindExamples(ctx context.Context, key identifier.Key) ([]ExampleRecord, error) {
	opts := options.FindOne().SetProjection(bson.M{"examples": 1})

	rec := &EntryRecord{}
	err := s.col.FindOne(ctx, bson.M{"_id": key.BSON()}, opts).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("例文の取得に失敗しました: %w", err)
	}
	return rec.Examples, nil
}

// SearchText は全文検索を関連度スコアの降順で実行する。
// スコアはtextScoreのメタ射影としてEntryRecord.Scoreへ格納される。
// 同点時の順序はMongoDBの自然順のまま返す（コア側で並べ替えない）。
func (s *MongoEntryStore) SearchText(ctx context.Context, query string, skip, limit int64) ([]EntryRecord, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("全文検索に失敗しました: %w", err)
	}
	defer cur.Close(ctx)

	var records []EntryRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("検索結果の読み取りに失敗しました: %w", err)
	}
	return records, nil
}

// SampleOne はエントリコレクションから無作為に1件取得する。
func (s *MongoEntryStore) SampleOne(ctx context.Context) (*EntryRecord, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}

	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("エントリの無作為抽出に失敗しました: %w", err)
	}
	defer cur.Close(ctx)

	var records []EntryRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("抽出結果の読み取りに失敗しました: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// AppendToEntry は各フィールドへ要素を末尾追記し、更新後のドキュメントを返す。
func (s *MongoEntryStore) AppendToEntry(ctx context.Context, key identifier.Key, additions EntryAdditions) (*EntryRecord, error) {
	push := bson.M{}
	if additions.Antonyms != nil {
		push["antonyms"] = bson.M{"$each": additions.Antonyms}
	}
	if additions.Synonyms != nil {
		push["synonyms"] = bson.M{"$each": additions.Synonyms}
	}
	if additions.Examples != nil {
		push["examples"] = bson.M{"$each": additions.Examples}
	}

	// 空の$pushは更新文書として不正になるため、追記対象が無い場合は現状を返す
	if len(push) == 0 {
		return s.FindByKey(ctx, key)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	rec := &EntryRecord{}
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": key.BSON()}, bson.M{"$push": push}, opts).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("エントリへの追記更新に失敗しました: %w", err)
	}
	return rec, nil
}

// compile-time interface check
var _ EntryStore = (*MongoEntryStore)(nil)
