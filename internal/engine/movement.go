package engine

// MoveOptions tunes ApplyMove.
type MoveOptions struct {
	// Force bypasses the home lock and table capacity. Used for system
	// relocations such as stress overflow.
	Force bool
}

// ApplyMove relocates a token to another table.
func (g *Game) ApplyMove(tokenID, toTableID string, opts MoveOptions) error {
	token, ok := g.Tokens[tokenID]
	if !ok {
		return ErrTokenNotFound
	}
	if token.Home && !opts.Force {
		return ErrTokenAtHome
	}
	to, ok := g.Tables[toTableID]
	if !ok {
		return ErrTableNotFound
	}
	if !opts.Force && len(to.Tokens) >= to.Capacity {
		return ErrTableFull
	}

	info := MoveInfo{TokenID: tokenID, From: token.TableID, To: toTableID, Forced: opts.Force}
	runMove(g, g.hooks().beforeMove, info)

	if from, ok := g.Tables[token.TableID]; ok {
		from.Tokens = without(from.Tokens, tokenID)
	}
	token.TableID = toTableID
	to.Tokens = append(to.Tokens, tokenID)

	runMove(g, g.hooks().afterMove, info)
	return nil
}
