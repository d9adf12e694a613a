package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Conflict            failure.ErrorCode = "Conflict"

	// Auction lifecycle.
	AuctionNotFound         failure.ErrorCode = "AuctionNotFound"
	AuctionNotActive        failure.ErrorCode = "AuctionNotActive"
	AuctionNotStarted       failure.ErrorCode = "AuctionNotStarted"
	AuctionAlreadyEnded     failure.ErrorCode = "AuctionAlreadyEnded"
	AuctionAlreadyTerminal  failure.ErrorCode = "AuctionAlreadyTerminal"
	InvalidStatusTransition failure.ErrorCode = "InvalidStatusTransition"

	// Bidding.
	OwnerCannotBid      failure.ErrorCode = "OwnerCannotBid"
	ProxyBelowBidAmount failure.ErrorCode = "ProxyBelowBidAmount"
	BidNotAboveCurrent  failure.ErrorCode = "BidNotAboveCurrent"
	BidBelowMinimumStep failure.ErrorCode = "BidBelowMinimumStep"
	BidderNotEligible   failure.ErrorCode = "BidderNotEligible"
	BidCommitConflict   failure.ErrorCode = "BidCommitConflict"
	InvalidBidAmount    failure.ErrorCode = "InvalidBidAmount"
	InvalidAuctionID    failure.ErrorCode = "InvalidAuctionID"
	InvalidBidderID     failure.ErrorCode = "InvalidBidderID"
)
