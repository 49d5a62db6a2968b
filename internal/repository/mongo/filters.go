package mongo

import (
	"regexp"
	"strings"
	"time"

	"roktoSheba/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// containsFold matches s anywhere in the field, ignoring case. The term is
// quoted so user input is never interpreted as a pattern.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func requesterFilter(email string) bson.M {
	return bson.M{"requesterEmail": email}
}

func adminRequestFilter(q domain.RequestQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"requesterName": containsFold(q.Search)},
			bson.M{"district": containsFold(q.Search)},
		}
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	return filter
}

func searchFilter(q domain.SearchQuery) bson.M {
	var or bson.A
	if blood := strings.TrimSpace(q.BloodGroup); blood != "" {
		or = append(or, bson.M{"bloodGroup": blood})
	}
	if district := strings.TrimSpace(q.District); district != "" {
		or = append(or, bson.M{"district": containsFold(district)})
	}
	if upazila := strings.TrimSpace(q.Upazila); upazila != "" {
		or = append(or, bson.M{"upazila": containsFold(upazila)})
	}
	if len(or) == 0 {
		return bson.M{}
	}
	return bson.M{"$or": or}
}

func requestPatchSet(p domain.RequestPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	fields := []struct {
		key string
		val *string
	}{
		{"requesterName", p.RequesterName},
		{"recipientName", p.RecipientName},
		{"district", p.District},
		{"upazila", p.Upazila},
		{"hospitalName", p.HospitalName},
		{"fullAddress", p.FullAddress},
		{"bloodGroup", p.BloodGroup},
		{"donationDate", p.DonationDate},
		{"donationTime", p.DonationTime},
		{"requestMessage", p.RequestMessage},
		{"status", p.Status},
		{"donorName", p.DonorName},
		{"donorEmail", p.DonorEmail},
	}
	for _, f := range fields {
		if f.val != nil {
			set[f.key] = *f.val
		}
	}
	return set
}

func profileSet(p domain.UserProfile, now time.Time) bson.M {
	return bson.M{
		"name":      p.Name,
		"phone":     p.Phone,
		"district":  p.District,
		"upazila":   p.Upazila,
		"blood":     p.Blood,
		"updatedAt": now,
	}
}
