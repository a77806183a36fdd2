package usecase

import (
	"fmt"
	"time"

	"passr/internal/domain/entity"
	"passr/pkg/deeplink"
)

// Push copy for every event this service emits. Titles and bodies match
// what the mobile client renders; data payloads always include a "type"
// discriminator and a deep-link "url".

func offerReceivedPush(buyerName string, amount float64, itemName string, listing *entity.Listing, offerID string) (string, string, map[string]string) {
	title := "New Offer Received! 💰"
	body := fmt.Sprintf("%s offered $%.0f for %s", buyerName, amount, itemName)

	data := map[string]string{
		"type":         "offer",
		"listingId":    listing.ID,
		"offerId":      offerID,
		"listingTitle": listing.Title,
		"url":          deeplink.Build(deeplink.RouteListingOffers, map[string]string{"listingId": listing.ID}),
	}
	if listing.CoverImage != "" {
		data["listingImage"] = listing.CoverImage
	}
	return title, body, data
}

func offerAcceptedPush(itemName, offerID string) (string, string, map[string]string) {
	title := "Offer Accepted! 🎉"
	body := fmt.Sprintf("Your offer for %s has been accepted! Tap to schedule pickup.", itemName)

	return title, body, map[string]string{
		"type":    "offer_accepted",
		"offerId": offerID,
		"url":     deeplink.Build(deeplink.RouteListingOffers, nil),
	}
}

func itemSoldPush(listing *entity.Listing) (string, string, map[string]string) {
	title := "You got the item! 🎉"
	body := fmt.Sprintf("You have officially purchased %s.", listing.Title)

	return title, body, map[string]string{
		"type":         "item_sold",
		"listingId":    listing.ID,
		"listingTitle": listing.Title,
		"url":          deeplink.Build(deeplink.RoutePastOrders, nil),
	}
}

func itemSoldToOtherPush(listing *entity.Listing) (string, string, map[string]string) {
	title := "Item Sold"
	itemName := listing.Title
	if itemName == "" {
		itemName = "Item"
	}
	body := fmt.Sprintf("%s has been sold to another buyer.", itemName)

	return title, body, map[string]string{
		"type":         "item_sold_other",
		"listingId":    listing.ID,
		"listingTitle": listing.Title,
		"url":          deeplink.Build(deeplink.RouteListingOffers, nil),
	}
}

func itemSoldToWishlistPush(listing *entity.Listing) (string, string, map[string]string) {
	title := "Item Sold 🔔"
	body := fmt.Sprintf("An item in your wishlist (%s) has been sold.", listing.Title)

	return title, body, map[string]string{
		"type":         "item_sold_wishlist",
		"listingId":    listing.ID,
		"listingTitle": listing.Title,
		"url":          deeplink.Build(deeplink.RouteProductDetails, map[string]string{"listingId": listing.ID}),
	}
}

func priceDropPush(listing *entity.Listing, oldPrice, newPrice float64) (string, string, map[string]string) {
	title := "Price Drop Alert! 📉"
	body := fmt.Sprintf("%s is now $%.0f (was $%.0f)", listing.Title, newPrice, oldPrice)

	return title, body, map[string]string{
		"type":         "price_drop",
		"listingId":    listing.ID,
		"listingTitle": listing.Title,
		"oldPrice":     fmt.Sprintf("%.0f", oldPrice),
		"newPrice":     fmt.Sprintf("%.0f", newPrice),
		"url":          deeplink.Build(deeplink.RouteProductDetails, map[string]string{"listingId": listing.ID}),
	}
}

func expirationWarningSellerPush(listing *entity.Listing, hoursLeft int) (string, string, map[string]string) {
	title := "Action Required: Listing Expiring ⏳"
	body := fmt.Sprintf("Your listing %q will expire in %d hours. Renew it or lower the price to sell it faster!", listing.Title, hoursLeft)

	return title, body, map[string]string{
		"type":         "expiration_warning_seller",
		"listingId":    listing.ID,
		"listingTitle": listing.Title,
		"url":          deeplink.Build(deeplink.RouteMyListings, nil),
	}
}

func expirationWarningWishlistPush(listing *entity.Listing, hoursLeft int) (string, string, map[string]string) {
	title := "Last Chance! ⏳"
	body := fmt.Sprintf("An item in your wishlist (%s) is expiring in %d hours. Don't miss out!", listing.Title, hoursLeft)

	return title, body, map[string]string{
		"type":         "expiration_warning_wishlist",
		"listingId":    listing.ID,
		"listingTitle": listing.Title,
		"url":          deeplink.Build(deeplink.RouteProductDetails, map[string]string{"listingId": listing.ID}),
	}
}

// chatMessagePush builds the recipient-facing copy for a freshly appended
// chat message, including the schedule-specific variants.
func chatMessagePush(senderName string, message *entity.Message, chat *entity.Chat, listing *entity.Listing, recipientIsSeller bool) (string, string, map[string]string) {
	title := "New message"
	body := "New message"
	notificationType := "message"

	switch message.Type {
	case entity.MessageTypeSchedule:
		title = "Pickup scheduled"
		notificationType = "pickup_scheduled"
		body = schedulePushBody(message.Schedule)
	case entity.MessageTypeScheduleAcceptance:
		title = "Pickup confirmed"
		notificationType = "offer_accepted"
		body = "✅ Accepted pickup time"
	case entity.MessageTypeScheduleRejection:
		title = "Pickup declined"
		notificationType = "offer_rejected"
		body = "❌ Declined pickup time"
	case entity.MessageTypeScheduleCancellation:
		title = "Pickup cancelled"
		notificationType = "offer_rejected"
		body = "🚫 Cancelled pickup"
	default:
		if message.Content != "" {
			body = fmt.Sprintf("%s: %q", senderName, message.Content)
		} else if message.ImageURL != "" {
			body = fmt.Sprintf("%s sent an image 📷", senderName)
		}
	}

	data := map[string]string{
		"type":      notificationType,
		"chatId":    chat.ID,
		"listingId": chat.ListingID,
		"url": deeplink.Build(deeplink.RouteChat, map[string]string{
			"listingId": chat.ListingID,
			"offerId":   chat.OfferID,
			"isSeller":  fmt.Sprintf("%t", recipientIsSeller),
		}),
		"createdAt": message.CreatedAt.UTC().Format(time.RFC3339),
	}
	if listing != nil {
		data["listingTitle"] = listing.Title
		data["productPrice"] = fmt.Sprintf("%.0f", listing.Price)
		if len(listing.Images) > 0 {
			data["listingImage"] = listing.Images[0]
		}
	}
	return title, body, data
}

func schedulePushBody(schedule *entity.SchedulePayload) string {
	const fallback = "📅 Proposed a pickup time"
	if schedule == nil {
		return fallback
	}

	date, err := time.Parse(time.RFC3339, schedule.Date)
	if err != nil {
		return fallback
	}
	at, err := time.Parse(time.RFC3339, schedule.Time)
	if err != nil {
		return fallback
	}

	body := fmt.Sprintf("%s at %s", date.Format("Jan 2, 2006"), at.Format("3:04 PM"))
	if schedule.Location != "" {
		body += " — " + schedule.Location
	}
	return body
}
