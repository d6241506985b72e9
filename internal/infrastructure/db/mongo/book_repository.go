package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookmanager/catalog-api/internal/core/domain"
)

const bookCollection = "books"

// BookRepository implements ports.BookRepository backed by MongoDB.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(bookCollection)}
}

type bookDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	Published     bool               `bson:"published"`
	Rating        float64            `bson:"rating"`
	YearPublished int                `bson:"year_published"`
	ISBN          string             `bson:"isbn"`
	Content       string             `bson:"content,omitempty"`
	CreatedAt     primitive.DateTime `bson:"created_at"`
	UpdatedAt     primitive.DateTime `bson:"updated_at"`
}

func (d bookDoc) toDomain() *domain.Book {
	return &domain.Book{
		ID:            d.ID.Hex(),
		Title:         d.Title,
		Author:        d.Author,
		Published:     d.Published,
		Rating:        d.Rating,
		YearPublished: d.YearPublished,
		ISBN:          d.ISBN,
		Content:       d.Content,
		CreatedAt:     d.CreatedAt.Time().UTC(),
		UpdatedAt:     d.UpdatedAt.Time().UTC(),
	}
}

// EnsureIndexes creates the unique ISBN index and the listing sort index.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isbn", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	doc := bookDoc{
		Title:         book.Title,
		Author:        book.Author,
		Published:     book.Published,
		Rating:        book.Rating,
		YearPublished: book.YearPublished,
		ISBN:          book.ISBN,
		Content:       book.Content,
		CreatedAt:     primitive.NewDateTimeFromTime(book.CreatedAt),
		UpdatedAt:     primitive.NewDateTimeFromTime(book.UpdatedAt),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBookExists
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	var doc bookDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(book.ID)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":          book.Title,
		"author":         book.Author,
		"published":      book.Published,
		"rating":         book.Rating,
		"year_published": book.YearPublished,
		"isbn":           book.ISBN,
		"content":        book.Content,
		"updated_at":     primitive.NewDateTimeFromTime(nowUTC()),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bookDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBookNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBookExists
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	var doc bookDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("delete book: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	return decodeBooks(ctx, cur)
}

func (r *BookRepository) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	re := primitive.Regex{Pattern: query, Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"title": re},
		{"author": re},
		{"isbn": re},
	}}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer cur.Close(ctx)

	return decodeBooks(ctx, cur)
}

func decodeBooks(ctx context.Context, cur *mongo.Cursor) ([]*domain.Book, error) {
	var docs []bookDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]*domain.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.toDomain())
	}
	return books, nil
}
