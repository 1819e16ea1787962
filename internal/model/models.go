package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserID is the hex form of a user document's object id. Post like lists,
// comment tokens and chat member lists all store this form, not the raw
// object id.
type UserID string

// Username is the unique, case-sensitive display name. Post like and comment
// operations address the post owner by Username, everything else by UserID;
// the two types keep callers from mixing them up.
type Username string

// User is a complete account document. Posts, favorites and the two sides of
// the subscription graph are embedded, not referenced.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username      Username           `bson:"username" json:"username"`
	Password      string             `bson:"password,omitempty" json:"password,omitempty"`
	AvaURL        string             `bson:"avaUrl,omitempty" json:"avaUrl,omitempty"`
	Subscriptions []UserID           `bson:"subscriptions,omitempty" json:"subscriptions,omitempty"`
	Subscribers   []UserID           `bson:"subscribers,omitempty" json:"subscribers,omitempty"`
	FavoritePosts []FavoriteEntry    `bson:"favoritePosts,omitempty" json:"favoritePosts,omitempty"`
	Posts         []Post             `bson:"posts,omitempty" json:"posts,omitempty"`
	Messages      []string           `bson:"messages,omitempty" json:"messages,omitempty"`
}

// UserID returns the account's opaque id in the form the rest of the
// document model stores it.
func (u *User) UserID() UserID {
	return UserID(u.ID.Hex())
}

// Post is embedded in its owner's document. ImageURL is the post's natural
// key within the owner's sequence; there is no separate post id.
type Post struct {
	Text     string    `bson:"text,omitempty" json:"text,omitempty"`
	Token    UserID    `bson:"token" json:"token"`
	ImageURL string    `bson:"imageUrl" json:"imageUrl"`
	Time     int64     `bson:"time" json:"time"`
	Likes    []UserID  `bson:"likes,omitempty" json:"likes,omitempty"`
	Comments []Comment `bson:"comments,omitempty" json:"comments,omitempty"`
}

// Comment is embedded in its parent post. Token identifies the commenter;
// Username is the commenter's display name captured at creation time and
// never refreshed afterwards.
type Comment struct {
	ID       string   `bson:"id" json:"id"`
	Token    UserID   `bson:"token" json:"token"`
	Username Username `bson:"username" json:"username"`
	Text     string   `bson:"text" json:"text"`
	Likes    []UserID `bson:"likes,omitempty" json:"likes,omitempty"`
}

// FavoriteEntry is an independent saved copy of a post reference. Deleting
// the original post does not remove the favorite.
type FavoriteEntry struct {
	PostToken UserID `bson:"postToken" json:"postToken"`
	ImageURL  string `bson:"imageUrl" json:"imageUrl"`
	Time      int64  `bson:"time" json:"time"`
}

// Chat is a two-party thread document from the messages collection.
type Chat struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Members []UserID           `bson:"members" json:"members"`
}
