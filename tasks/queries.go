package tasks

// GraphQL documents for the discussion tasks.

const discussionListQuery = `
query($owner: String!, $repo: String!, $first: Int!, $after: String, $categoryId: ID) {
  repository(owner: $owner, name: $repo) {
    discussions(first: $first, after: $after, categoryId: $categoryId) {
      nodes {
        id
        number
        url
      }
      pageInfo {
        endCursor
        hasNextPage
      }
    }
  }
}`

const discussionCreateMutation = `
mutation($repositoryId: ID!, $categoryId: ID!, $title: String!, $body: String!) {
  createDiscussion(input: {
    repositoryId: $repositoryId,
    categoryId: $categoryId,
    title: $title,
    body: $body
  }) {
    discussion {
      id
      number
      url
    }
  }
}`

const discussionUpdateMutation = `
mutation($discussionId: ID!, $title: String, $body: String) {
  updateDiscussion(input: {
    discussionId: $discussionId,
    title: $title,
    body: $body
  }) {
    discussion {
      id
      number
      url
    }
  }
}`

const discussionDeleteMutation = `
mutation($id: ID!) {
  deleteDiscussion(input: { id: $id }) {
    discussion {
      id
    }
  }
}`

const discussionCommentAddMutation = `
mutation($discussionId: ID!, $body: String!, $replyToId: ID) {
  addDiscussionComment(input: {
    discussionId: $discussionId,
    body: $body,
    replyToId: $replyToId
  }) {
    comment {
      id
      url
    }
  }
}`

const discussionCommentUpdateMutation = `
mutation($id: ID!, $body: String!) {
  updateDiscussionComment(input: { commentId: $id, body: $body }) {
    comment {
      id
      url
    }
  }
}`
