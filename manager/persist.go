// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package manager

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dashpay/govd/constants"
	"github.com/dashpay/govd/govobject"
)

// voteRecord is the persisted form of a GovernanceVote: every
// immutable field, hex-encoded where the live type is a fixed-size
// byte array so the JSON stays readable.
type voteRecord struct {
	VoterTxHash string         `json:"voterTxHash"`
	VoterIndex  uint32         `json:"voterIndex"`
	ParentHash  string         `json:"parentHash"`
	Signal      govobject.Signal  `json:"signal"`
	Outcome     govobject.Outcome `json:"outcome"`
	Timestamp   time.Time      `json:"timestamp"`
	Signature   []byte         `json:"signature"`
}

// objectRecord is the persisted form of a GovernanceObject.
// LocalValidity is deliberately absent: it is always re-derived after
// a restore rather than trusted from a backup (spec §4.J's
// invalidate-on-tip logic already assumes it can be stale).
type objectRecord struct {
	ObjectType         govobject.ObjectType `json:"objectType"`
	Payload            []byte            `json:"payload"`
	MasternodeOutTx    string            `json:"masternodeTxHash"`
	MasternodeOutIndex uint32            `json:"masternodeIndex"`
	CollateralHash     string            `json:"collateralHash"`
	CreationTime       time.Time         `json:"creationTime"`
	Signature          []byte            `json:"signature"`

	CachedDelete bool      `json:"cachedDelete"`
	Expired      bool      `json:"expired"`
	RecordLocked bool      `json:"recordLocked"`
	PermLocked   bool      `json:"permLocked"`
	DeletionTime time.Time `json:"deletionTime"`

	Votes []voteRecord `json:"votes"`
}

// snapshot is the top-level persisted document, tagged with the wire
// version named in spec §6 so a future incompatible format can be
// detected rather than silently misparsed.
type snapshot struct {
	Version string         `json:"version"`
	SavedAt time.Time      `json:"savedAt"`
	Objects []objectRecord `json:"objects"`
}

func toObjectRecord(obj *govobject.GovernanceObject) objectRecord {
	r := objectRecord{
		ObjectType:         obj.ObjectType,
		Payload:            obj.Payload,
		MasternodeOutTx:    hex.EncodeToString(obj.MasternodeOut.TxHash[:]),
		MasternodeOutIndex: obj.MasternodeOut.Index,
		CollateralHash:     hex.EncodeToString(obj.CollateralHash[:]),
		CreationTime:       obj.CreationTime,
		Signature:          obj.Signature,
		CachedDelete:       obj.CachedDelete,
		Expired:            obj.Expired,
		RecordLocked:       obj.RecordLocked,
		PermLocked:         obj.PermLocked,
		DeletionTime:       obj.DeletionTime,
	}
	for _, v := range obj.VoteFile.Votes {
		r.Votes = append(r.Votes, voteRecord{
			VoterTxHash: hex.EncodeToString(v.Voter.TxHash[:]),
			VoterIndex:  v.Voter.Index,
			ParentHash:  v.ParentHash.String(),
			Signal:      v.Signal,
			Outcome:     v.Outcome,
			Timestamp:   v.Timestamp,
			Signature:   v.Signature,
		})
	}
	return r
}

func (r objectRecord) toObject() (*govobject.GovernanceObject, error) {
	txHash, err := hex.DecodeString(r.MasternodeOutTx)
	if err != nil || len(txHash) != 32 {
		return nil, fmt.Errorf("corrupt masternode outpoint in snapshot: %w", err)
	}
	collateral, err := hex.DecodeString(r.CollateralHash)
	if err != nil || len(collateral) != 32 {
		return nil, fmt.Errorf("corrupt collateral hash in snapshot: %w", err)
	}

	var mn govobject.Outpoint
	copy(mn.TxHash[:], txHash)
	mn.Index = r.MasternodeOutIndex
	var collateralHash [32]byte
	copy(collateralHash[:], collateral)

	obj, err := govobject.New(r.ObjectType, r.Payload, mn, collateralHash, r.CreationTime, r.Signature)
	if err != nil {
		return nil, err
	}
	obj.CachedDelete = r.CachedDelete
	obj.Expired = r.Expired
	obj.RecordLocked = r.RecordLocked
	obj.PermLocked = r.PermLocked
	obj.DeletionTime = r.DeletionTime

	for _, vr := range r.Votes {
		voterTx, err := hex.DecodeString(vr.VoterTxHash)
		if err != nil || len(voterTx) != 32 {
			continue
		}
		parent, err := govobject.HashFromHex(vr.ParentHash)
		if err != nil {
			continue
		}
		var voter govobject.Outpoint
		copy(voter.TxHash[:], voterTx)
		voter.Index = vr.VoterIndex

		v, err := govobject.NewVote(voter, parent, vr.Signal, vr.Outcome, vr.Timestamp, vr.Signature)
		if err != nil {
			continue
		}
		obj.VoteFile.AddVote(*v)
	}

	return obj, nil
}

// Serialize renders the live store to its persisted JSON form (spec
// §6 "Persistence"), the governance-object analogue of the teacher's
// ReservoirStore.Backup.
func Serialize() ([]byte, error) {
	globalData.Lock()
	defer globalData.Unlock()

	snap := snapshot{Version: constants.PersistenceVersion, SavedAt: time.Now()}
	globalData.pipeline.Store.Each(func(_ govobject.Hash, obj *govobject.GovernanceObject) {
		snap.Objects = append(snap.Objects, toObjectRecord(obj))
	})
	return json.Marshal(&snap)
}

// Save serializes the store and writes it through the configured
// Persister.
func Save() error {
	data, err := Serialize()
	if err != nil {
		return err
	}
	return globalData.cfg.Persist.Save(data)
}

// Load reads a snapshot back through the configured Persister and
// rebuilds the live store from it.
func Load() error {
	data, err := globalData.cfg.Persist.Load()
	if err != nil {
		return err
	}
	return Deserialize(data)
}

// Deserialize parses data and rebuilds the store, index, and rate
// limiter state from it, the restore half of Serialize/Save. Votes
// and objects are re-admitted through the normal pipeline methods
// under a rate-limiter bypass (ratelimiter.DisableScope) — a
// persisted backup is trusted content, not network input, so the
// trigger-rate gate that exists to police submission order must not
// itself reject a restore — mirroring reservoir's internalRecover,
// which re-threads a backup through the ordinary store/verify paths
// rather than writing the maps directly.
func Deserialize(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Version != constants.PersistenceVersion {
		return fmt.Errorf("snapshot version %q does not match %q", snap.Version, constants.PersistenceVersion)
	}

	globalData.Lock()
	defer globalData.Unlock()

	restore := globalData.pipeline.Limiter.DisableScope()
	defer restore()

	for _, rec := range snap.Objects {
		obj, err := rec.toObject()
		if err != nil {
			globalData.log.Errorf("dropping corrupt object from snapshot: %s", err)
			continue
		}
		rebuildOne(obj)
	}
	addCachedTriggers(snap.Objects)

	return nil
}

// rebuildOne inserts a restored object directly into the store and
// replays its votes into the live index, bypassing HandleObject's
// masternode/signature checks — a persisted object already passed
// them once, and the masternode list it was checked against may no
// longer agree at restart time.
func rebuildOne(obj *govobject.GovernanceObject) {
	votes := obj.VoteFile.Votes
	obj.VoteFile = govobject.NewVoteFile()

	stored, inserted := globalData.pipeline.Store.EmplaceUnique(obj)
	if !inserted {
		return
	}
	for _, v := range votes {
		globalData.pipeline.Votes.AddLive(v)
		stored.VoteFile.AddVote(v)
	}
}

// addCachedTriggers re-primes the rate limiter's per-masternode
// buffers from every restored Trigger object's creation time, so the
// submission-rate history a backup captured survives the restart
// instead of resetting to empty.
func addCachedTriggers(records []objectRecord) {
	for _, rec := range records {
		if rec.ObjectType != govobject.Trigger {
			continue
		}
		obj, err := rec.toObject()
		if err != nil {
			continue
		}
		globalData.pipeline.Limiter.Seed(obj, obj.CreationTime.Unix())
	}
}
