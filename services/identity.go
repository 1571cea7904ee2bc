package services

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Owner identifies who a request acts as: a registered account or an
// anonymous guest keyed by an opaque session token. Every debate lookup
// goes through the same owner predicate that scoped the debate at creation,
// so a debate fetched through the wrong owner is reported as not found.
type Owner struct {
	UserID       primitive.ObjectID
	IsGuest      bool
	SessionToken string
}

// DebateFilter builds the owner-scoped lookup filter for a single debate.
// Guest debates are matched on a null userId plus the session token;
// account debates on the owning userId.
func (o Owner) DebateFilter(debateID primitive.ObjectID) bson.M {
	if o.IsGuest {
		return bson.M{"_id": debateID, "userId": nil, "sessionToken": o.SessionToken}
	}
	return bson.M{"_id": debateID, "userId": o.UserID}
}

// DebateListFilter builds the owner-scoped filter for listing debates.
func (o Owner) DebateListFilter() bson.M {
	if o.IsGuest {
		return bson.M{"userId": nil, "sessionToken": o.SessionToken}
	}
	return bson.M{"userId": o.UserID}
}
