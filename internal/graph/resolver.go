package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/bookshelfapp/bookshelf-server/internal/auth"
	"github.com/bookshelfapp/bookshelf-server/internal/domain"
	"github.com/bookshelfapp/bookshelf-server/internal/events"
	"github.com/bookshelfapp/bookshelf-server/internal/service"
)

// Resolver is the root resolver for queries, mutations and subscriptions.
type Resolver struct {
	catalog *service.CatalogService
	auth    *service.AuthService
	broker  *events.Broker
}

// NewResolver creates the root resolver.
func NewResolver(catalog *service.CatalogService, authService *service.AuthService, broker *events.Broker) *Resolver {
	return &Resolver{
		catalog: catalog,
		auth:    authService,
		broker:  broker,
	}
}

// BookCount resolves Query.bookCount.
func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	n, err := r.catalog.BookCount(ctx)
	return int32(n), err
}

// AuthorCount resolves Query.authorCount.
func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	n, err := r.catalog.AuthorCount(ctx)
	return int32(n), err
}

// AllBooksArgs are the optional filters for Query.allBooks.
type AllBooksArgs struct {
	Author *string
	Genre  *string
}

// AllBooks resolves Query.allBooks.
func (r *Resolver) AllBooks(ctx context.Context, args AllBooksArgs) ([]*BookResolver, error) {
	books, err := r.catalog.AllBooks(ctx, args.Author, args.Genre)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*BookResolver, 0, len(books))
	for _, b := range books {
		resolvers = append(resolvers, &BookResolver{catalog: r.catalog, book: b})
	}
	return resolvers, nil
}

// AllAuthors resolves Query.AllAuthors.
func (r *Resolver) AllAuthors(ctx context.Context) ([]*AuthorResolver, error) {
	authors, err := r.catalog.AllAuthors(ctx)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*AuthorResolver, 0, len(authors))
	for _, a := range authors {
		resolvers = append(resolvers, &AuthorResolver{catalog: r.catalog, author: a})
	}
	return resolvers, nil
}

// Me resolves Query.me to the user the context middleware attached, or
// nil for anonymous requests.
func (r *Resolver) Me(ctx context.Context) *UserResolver {
	user := auth.UserFromContext(ctx)
	if user == nil {
		return nil
	}
	return &UserResolver{user: user}
}

// AddBookArgs are the arguments for Mutation.addBook.
type AddBookArgs struct {
	Title     string
	Author    string
	Published *int32
	Genres    []string
}

// AddBook resolves Mutation.addBook.
func (r *Resolver) AddBook(ctx context.Context, args AddBookArgs) (*BookResolver, error) {
	req := service.AddBookRequest{
		Title:  args.Title,
		Author: args.Author,
		Genres: args.Genres,
	}
	if args.Published != nil {
		published := int(*args.Published)
		req.Published = &published
	}

	book, err := r.catalog.AddBook(ctx, auth.UserFromContext(ctx), req)
	if err != nil {
		return nil, err
	}
	return &BookResolver{catalog: r.catalog, book: book}, nil
}

// EditAuthorArgs are the arguments for Mutation.editAuthor.
type EditAuthorArgs struct {
	Name string
	Born int32
}

// EditAuthor resolves Mutation.editAuthor.
func (r *Resolver) EditAuthor(ctx context.Context, args EditAuthorArgs) (*AuthorResolver, error) {
	author, err := r.catalog.EditAuthor(ctx, auth.UserFromContext(ctx), service.EditAuthorRequest{
		Name: args.Name,
		Born: int(args.Born),
	})
	if err != nil {
		return nil, err
	}
	return &AuthorResolver{catalog: r.catalog, author: author}, nil
}

// CreateUserArgs are the arguments for Mutation.createUser.
type CreateUserArgs struct {
	Username      string
	Password      string
	FavoriteGenre string
}

// CreateUser resolves Mutation.createUser.
func (r *Resolver) CreateUser(ctx context.Context, args CreateUserArgs) (*UserResolver, error) {
	user, err := r.auth.CreateUser(ctx, service.CreateUserRequest{
		Username:      args.Username,
		Password:      args.Password,
		FavoriteGenre: args.FavoriteGenre,
	})
	if err != nil {
		return nil, err
	}
	return &UserResolver{user: user}, nil
}

// LoginArgs are the arguments for Mutation.login.
type LoginArgs struct {
	Username string
	Password string
}

// Login resolves Mutation.login.
func (r *Resolver) Login(ctx context.Context, args LoginArgs) (*TokenResolver, error) {
	token, err := r.auth.Login(ctx, service.LoginRequest{
		Username: args.Username,
		Password: args.Password,
	})
	if err != nil {
		return nil, err
	}
	return &TokenResolver{value: token}, nil
}

// BookAdded resolves Subscription.bookAdded. Each subscriber gets the
// books published while its connection is open; nothing is replayed.
func (r *Resolver) BookAdded(ctx context.Context) <-chan *BookResolver {
	books := r.broker.Subscribe(ctx)
	out := make(chan *BookResolver)

	go func() {
		defer close(out)
		for book := range books {
			select {
			case out <- &BookResolver{catalog: r.catalog, book: book}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// BookResolver resolves fields of the Book type.
type BookResolver struct {
	catalog *service.CatalogService
	book    *domain.Book
}

// Title resolves Book.title.
func (r *BookResolver) Title() string { return r.book.Title }

// Published resolves Book.published.
func (r *BookResolver) Published() *int32 {
	return intPtrToInt32(r.book.Published)
}

// Author resolves Book.author by loading the referenced author.
func (r *BookResolver) Author(ctx context.Context) (*AuthorResolver, error) {
	author, err := r.catalog.AuthorByID(ctx, r.book.AuthorID)
	if err != nil {
		return nil, err
	}
	return &AuthorResolver{catalog: r.catalog, author: author}, nil
}

// Genres resolves Book.genres.
func (r *BookResolver) Genres() []string {
	if r.book.Genres == nil {
		return []string{}
	}
	return r.book.Genres
}

// ID resolves Book.id.
func (r *BookResolver) ID() graphql.ID { return graphql.ID(r.book.ID) }

// AuthorResolver resolves fields of the Author type.
type AuthorResolver struct {
	catalog *service.CatalogService
	author  *domain.Author
}

// Name resolves Author.name.
func (r *AuthorResolver) Name() string { return r.author.Name }

// Born resolves Author.born.
func (r *AuthorResolver) Born() *int32 {
	return intPtrToInt32(r.author.Born)
}

// ID resolves Author.id.
func (r *AuthorResolver) ID() graphql.ID { return graphql.ID(r.author.ID) }

// BookCount resolves Author.bookCount by re-querying the author by name
// and counting the books that reference it. The count is always derived
// at read time, never cached.
func (r *AuthorResolver) BookCount(ctx context.Context) (*int32, error) {
	author, err := r.catalog.AuthorByName(ctx, r.author.Name)
	if err != nil {
		return nil, err
	}
	n, err := r.catalog.BooksByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	count := int32(n)
	return &count, nil
}

// UserResolver resolves fields of the User type.
type UserResolver struct {
	user *domain.User
}

// Username resolves User.username.
func (r *UserResolver) Username() string { return r.user.Username }

// FavoriteGenre resolves User.favoriteGenre.
func (r *UserResolver) FavoriteGenre() string { return r.user.FavoriteGenre }

// ID resolves User.id.
func (r *UserResolver) ID() graphql.ID { return graphql.ID(r.user.ID) }

// TokenResolver resolves fields of the Token type.
type TokenResolver struct {
	value string
}

// Value resolves Token.value.
func (r *TokenResolver) Value() string { return r.value }

func intPtrToInt32(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}
