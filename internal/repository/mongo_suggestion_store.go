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

// suggestionsCollection は提案を格納するコレクション名。
const suggestionsCollection = "words-suggestions"

// MongoSuggestionStore はMongoDBを使用した提案ストア。
type MongoSuggestionStore struct {
	col *mongo.Collection
}

// NewMongoSuggestionStore はMongoSuggestionStoreを生成する。
func NewMongoSuggestionStore(db *mongo.Database) *MongoSuggestionStore {
	return &MongoSuggestionStore{col: db.Collection(suggestionsCollection)}
}

// Insert は新規提案を1件挿入し、採番された_idを返す。
func (s *MongoSuggestionStore) Insert(ctx context.Context, rec *SuggestionRecord) (interface{}, error) {
	res, err := s.col.InsertOne(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("提案の挿入に失敗しました: %w", err)
	}
	return res.InsertedID, nil
}

// FindByKey は解決済みキーで提案を1件取得する。見つからない場合はnilを返す。
func (s *MongoSuggestionStore) FindByKey(ctx context.Context, key identifier.Key) (*SuggestionRecord, error) {
	rec := &SuggestionRecord{}
	err := s.col.FindOne(ctx, bson.M{"_id": key.BSON()}).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("IDによる提案の取得に失敗しました: %w", err)
	}
	return rec, nil
}

// FindAll は全提案を取得する。
func (s *MongoSuggestionStore) FindAll(ctx context.Context) ([]SuggestionRecord, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("提案一覧の取得に失敗しました: %w", err)
	}
	defer cur.Close(ctx)

	var records []SuggestionRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("提案行の読み取りに失敗しました: %w", err)
	}
	return records, nil
}

// ReplaceFields は提案のフィールドを直接代入で上書きし、更新後のドキュメントを返す。
// nilのフィールドは$setの対象に含めない。
func (s *MongoSuggestionStore) ReplaceFields(ctx context.Context, key identifier.Key, fields SuggestionFields) (*SuggestionRecord, error) {
	set := bson.M{}
	if fields.Antonyms != nil {
		set["antonyms"] = fields.Antonyms
	}
	if fields.Synonyms != nil {
		set["synonyms"] = fields.Synonyms
	}
	if fields.Examples != nil {
		set["examples"] = fields.Examples
	}

	if len(set) == 0 {
		return s.FindByKey(ctx, key)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	rec := &SuggestionRecord{}
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": key.BSON()}, bson.M{"$set": set}, opts).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("提案の更新に失敗しました: %w", err)
	}
	return rec, nil
}

// MarkApplied は提案のappliedフラグを立て、更新後のドキュメントを返す。
func (s *MongoSuggestionStore) MarkApplied(ctx context.Context, key identifier.Key) (*SuggestionRecord, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	rec := &SuggestionRecord{}
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": key.BSON()}, bson.M{"$set": bson.M{"applied": true}}, opts).Decode(rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("適用フラグの更新に失敗しました: %w", err)
	}
	return rec, nil
}

// compile-time interface check
var _ SuggestionStore = (*MongoSuggestionStore)(nil)
